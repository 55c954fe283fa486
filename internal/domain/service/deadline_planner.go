package service

import (
	"fmt"
	"time"

	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/model"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/valueobject"
)

const (
	DefaultDeadlineHorizonDays = 30
	defaultNoticePeriodDays    = 30
	noticeWarningDays          = 7
)

// PlannedAlert is an alert the planner wants to exist for a contract.
type PlannedAlert struct {
	Type      valueobject.AlertType
	Deadline  time.Time
	DaysUntil int
	Message   string
}

// DeadlinePlanner decides which reminders a contract end date warrants.
type DeadlinePlanner struct {
	horizonDays int
}

// NewDeadlinePlanner creates a planner that looks horizonDays ahead.
func NewDeadlinePlanner(horizonDays int) *DeadlinePlanner {
	if horizonDays <= 0 {
		horizonDays = DefaultDeadlineHorizonDays
	}
	return &DeadlinePlanner{horizonDays: horizonDays}
}

// HorizonDays returns how far ahead the planner looks.
func (p *DeadlinePlanner) HorizonDays() int {
	return p.horizonDays
}

// Plan returns one alert per threshold (30/14/7/1) the end date has crossed,
// plus a notice_deadline alert when the notice deadline is at most 7 days
// away. Contracts outside the horizon or already ended get nothing.
func (p *DeadlinePlanner) Plan(d model.ContractDeadline, today time.Time) []PlannedAlert {
	today = truncateDay(today)
	end := truncateDay(d.EndDate)
	daysUntilEnd := daysBetween(today, end)
	if daysUntilEnd < 0 || daysUntilEnd > p.horizonDays {
		return nil
	}

	name := d.Counterparty
	if name == "" {
		name = "Vertrag " + d.AnalysisID.String()[:8]
	}

	alerts := make([]PlannedAlert, 0, len(valueobject.DeadlineThresholds)+1)
	for _, threshold := range valueobject.DeadlineThresholds {
		if daysUntilEnd > threshold {
			continue
		}
		alerts = append(alerts, PlannedAlert{
			Type:      valueobject.AlertTypeForDays(threshold),
			Deadline:  end,
			DaysUntil: daysUntilEnd,
			Message:   fmt.Sprintf("%s (%s) endet in %d Tagen am %s.", name, d.ContractType.String(), daysUntilEnd, end.Format("02.01.2006")),
		})
	}

	notice := d.NoticePeriodDays
	if notice <= 0 {
		notice = defaultNoticePeriodDays
	}
	noticeDeadline := end.AddDate(0, 0, -notice)
	daysUntilNotice := daysBetween(today, noticeDeadline)
	if daysUntilNotice >= 0 && daysUntilNotice <= noticeWarningDays {
		msg := fmt.Sprintf("Kündigungsfrist für %s läuft in %d Tagen am %s ab.", name, daysUntilNotice, noticeDeadline.Format("02.01.2006"))
		if d.AutoRenewal {
			msg += " Ohne Kündigung verlängert sich der Vertrag automatisch."
		}
		alerts = append(alerts, PlannedAlert{
			Type:      valueobject.AlertTypeNoticeDeadline,
			Deadline:  noticeDeadline,
			DaysUntil: daysUntilNotice,
			Message:   msg,
		})
	}

	return alerts
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
