package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/clinicadobicho/clinicadobicho/internal/utils"
	"github.com/clinicadobicho/clinicadobicho/pkg/appointment"
	log "github.com/sirupsen/logrus"
)

// AppointmentsProvider fetches a veterinarian's appointments with their
// display data loaded.
type AppointmentsProvider func(ctx context.Context, vetId int) ([]appointment.Appointment, error)

type Service struct {
	appointments AppointmentsProvider
	clock        utils.Clock
	location     *time.Location
}

func NewService(appointments AppointmentsProvider, clock utils.Clock, timezone string) (*Service, error) {
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid clinic timezone %q: %w", timezone, err)
	}
	return &Service{
		appointments: appointments,
		clock:        clock,
		location:     location,
	}, nil
}

// BuildCalendar produces the week view for one veterinarian: the booked
// events first (in persisted-id order), then the remaining open slots in
// day-then-hour order. All date and hour arithmetic happens in the clinic
// timezone so slot comparison matches business-hours semantics.
//
// A veterinarian id that matches no stored appointments, including an id
// that does not exist at all, yields a fully available week. The write path
// rejects such ids; this read path deliberately does not.
func (s *Service) BuildCalendar(ctx context.Context, vetId int) ([]CalendarEvent, error) {
	if vetId == 0 {
		return []CalendarEvent{}, nil
	}

	booked, err := s.appointments(ctx, vetId)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointments: %w", err)
	}

	events := make([]CalendarEvent, 0, len(booked)+5*len(BusinessHours))
	bookedSlots := make(map[string]bool, len(booked))

	for _, a := range booked {
		localStart := a.Date.In(s.location)
		bookedSlots[slotKey(localStart, localStart.Hour())] = true

		vetName := ""
		if a.Veterinarian != nil {
			vetName = a.Veterinarian.Name
		}
		events = append(events, CalendarEvent{
			Id:    fmt.Sprintf("%d", a.Id),
			Title: fmt.Sprintf("%s - %s", a.Animal.Name, vetName),
			Start: localStart.Format(startLayout),
			Color: bookedColor,
		})
	}

	today := s.clock.Now().In(s.location)
	for i := 0; i < HorizonDays; i++ {
		day := today.AddDate(0, 0, i)
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		for _, hour := range BusinessHours {
			if bookedSlots[slotKey(day, hour)] {
				continue
			}
			slot := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, s.location)
			events = append(events, CalendarEvent{
				Id:    fmt.Sprintf("free-%s-%02d", day.Format("2006-01-02"), hour),
				Title: availableTitle,
				Start: slot.Format(startLayout),
				Color: availableColor,
			})
		}
	}

	log.Tracef("calendar for veterinarian %d: %d booked, %d total events", vetId, len(booked), len(events))
	return events, nil
}

// slotKey identifies one local calendar date + hour slot.
func slotKey(day time.Time, hour int) string {
	return fmt.Sprintf("%s-%d", day.Format("2006-01-02"), hour)
}
