// services/slot_service.go
package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"servio-backend/models"
	"servio-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SlotInput is a normalized availability slot: canonical "2006-01-02" date and
// "15:04:05" times, with start < end already guaranteed.
type SlotInput struct {
	Date      string
	StartTime string
	EndTime   string
}

func (s SlotInput) key() string {
	return s.Date + "|" + s.StartTime + "|" + s.EndTime
}

type SlotService struct {
	db *gorm.DB
}

func NewSlotService(db *gorm.DB) *SlotService {
	return &SlotService{db: db}
}

// ListFreeSlots returns the slots of a service that end after asOf, excluding
// booked ones unless includeBooked is set, ordered by date then start time.
func (s *SlotService) ListFreeSlots(serviceID uuid.UUID, asOf time.Time, includeBooked bool) ([]models.Availability, error) {
	today := utils.DateString(asOf)
	clock := utils.ClockString(asOf)

	q := s.db.Where("service_id = ?", serviceID).
		Where("date > ? OR (date = ? AND end_time > ?)", today, today, clock)

	if !includeBooked {
		q = q.Where("id NOT IN (?)", s.db.Model(&models.Booking{}).Select("availability_id"))
	}

	var slots []models.Availability
	if err := q.Order("date, start_time").Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

// ReplaceSlots reconciles a service's slots against the desired set inside the
// caller's transaction. Slots present in both sets keep their rows (and IDs);
// slots missing from the desired set are deleted only when unbooked. A booked
// slot is never removed, whatever the desired set says.
func (s *SlotService) ReplaceSlots(tx *gorm.DB, serviceID uuid.UUID, desired []SlotInput) error {
	var existing []models.Availability
	if err := tx.Where("service_id = ?", serviceID).Find(&existing).Error; err != nil {
		return err
	}

	var bookedIDs []uuid.UUID
	if err := tx.Model(&models.Booking{}).Where("service_id = ?", serviceID).
		Pluck("availability_id", &bookedIDs).Error; err != nil {
		return err
	}
	booked := make(map[uuid.UUID]bool, len(bookedIDs))
	for _, id := range bookedIDs {
		booked[id] = true
	}

	desiredByKey := make(map[string]SlotInput, len(desired))
	for _, d := range desired {
		desiredByKey[d.key()] = d
	}

	var deleteIDs []uuid.UUID
	existingKeys := make(map[string]bool, len(existing))
	for _, a := range existing {
		k := a.Date + "|" + a.StartTime + "|" + a.EndTime
		existingKeys[k] = true
		if _, wanted := desiredByKey[k]; !wanted && !booked[a.ID] {
			deleteIDs = append(deleteIDs, a.ID)
		}
	}

	var toCreate []models.Availability
	for _, d := range desired {
		if !existingKeys[d.key()] {
			toCreate = append(toCreate, models.Availability{
				ServiceID: serviceID,
				Date:      d.Date,
				StartTime: d.StartTime,
				EndTime:   d.EndTime,
			})
		}
	}

	if len(deleteIDs) > 0 {
		if err := tx.Delete(&models.Availability{}, "id IN ?", deleteIDs).Error; err != nil {
			return err
		}
	}
	if len(toCreate) > 0 {
		if err := tx.Create(&toCreate).Error; err != nil {
			return err
		}
	}
	return nil
}

// NormalizeSlotPayload parses the availability wire payload into clean slot
// inputs. Two shapes are accepted: a flat list of {date, start_time, end_time}
// records, and the legacy {"YYYY-MM-DD": [{start, end}]} mapping of datetime
// pairs, of which only the time-of-day is kept (zone offsets are truncated,
// never converted). Entries that fail to parse, or where start >= end, are
// dropped; normalization never fails a whole batch.
func NormalizeSlotPayload(raw json.RawMessage) []SlotInput {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}

	// multipart forms deliver the payload as a JSON-encoded string
	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil
		}
		raw = bytes.TrimSpace([]byte(inner))
		if len(raw) == 0 {
			return nil
		}
	}

	var slots []SlotInput
	switch raw[0] {
	case '[':
		slots = normalizeFlat(raw)
	case '{':
		slots = normalizeLegacy(raw)
	default:
		return nil
	}

	// the desired set is a set: collapse duplicates
	seen := make(map[string]bool, len(slots))
	out := slots[:0]
	for _, s := range slots {
		if !seen[s.key()] {
			seen[s.key()] = true
			out = append(out, s)
		}
	}
	return out
}

type flatSlotPayload struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func normalizeFlat(raw []byte) []SlotInput {
	var entries []flatSlotPayload
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil
	}

	var out []SlotInput
	for _, e := range entries {
		if e.Date == "" || e.StartTime == "" || e.EndTime == "" {
			continue
		}
		date, ok := parseDate(e.Date)
		if !ok {
			continue
		}
		start, ok := parseClock(e.StartTime)
		if !ok {
			continue
		}
		end, ok := parseClock(e.EndTime)
		if !ok {
			continue
		}
		if start >= end {
			continue
		}
		out = append(out, SlotInput{Date: date, StartTime: start, EndTime: end})
	}
	return out
}

type legacySlotPayload struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func normalizeLegacy(raw []byte) []SlotInput {
	var byDate map[string][]legacySlotPayload
	if err := json.Unmarshal(raw, &byDate); err != nil {
		return nil
	}

	var out []SlotInput
	for d, entries := range byDate {
		date, ok := parseDate(d)
		if !ok {
			continue
		}
		for _, e := range entries {
			start, ok := clockOfDatetime(e.Start)
			if !ok {
				continue
			}
			end, ok := clockOfDatetime(e.End)
			if !ok {
				continue
			}
			if start >= end {
				continue
			}
			out = append(out, SlotInput{Date: date, StartTime: start, EndTime: end})
		}
	}
	return out
}

func parseDate(s string) (string, bool) {
	t, err := time.Parse(utils.DateLayout, s)
	if err != nil {
		return "", false
	}
	return utils.DateString(t), true
}

// parseClock accepts "HH:MM" or "HH:MM:SS" and returns the canonical form.
func parseClock(s string) (string, bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return "", false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return "", false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", false
	}
	sec := 0
	if len(parts) == 3 {
		if sec, err = strconv.Atoi(parts[2]); err != nil {
			return "", false
		}
	}
	if h < 0 || h > 23 || m < 0 || m > 59 || sec < 0 || sec > 59 {
		return "", false
	}
	return fmt.Sprintf("%02d:%02d:%02d", h, m, sec), true
}

// clockOfDatetime extracts the wall-clock time of an ISO datetime. Any zone
// offset is discarded as-is; "10:00:00+05:00" stays 10:00:00.
func clockOfDatetime(s string) (string, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return utils.ClockString(t), true
		}
	}
	return "", false
}
