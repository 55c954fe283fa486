package service_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/model"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/service"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/valueobject"
)

func alertTypes(alerts []service.PlannedAlert) []string {
	out := make([]string, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, a.Type.String())
	}
	return out
}

func TestDeadlinePlanner_Plan(t *testing.T) {
	today := time.Date(2026, 3, 1, 15, 30, 0, 0, time.UTC)
	planner := service.NewDeadlinePlanner(30)

	tests := []struct {
		name       string
		daysToEnd  int
		noticeDays int
		want       []string
	}{
		{name: "beyond horizon", daysToEnd: 45, noticeDays: 90, want: []string{}},
		{name: "already ended", daysToEnd: -1, want: []string{}},
		{name: "exactly thirty days", daysToEnd: 30, noticeDays: 90, want: []string{"30_days"}},
		{name: "twenty days", daysToEnd: 20, noticeDays: 90, want: []string{"30_days"}},
		{name: "ten days", daysToEnd: 10, noticeDays: 90, want: []string{"30_days", "14_days"}},
		{name: "five days", daysToEnd: 5, noticeDays: 90, want: []string{"30_days", "14_days", "7_days"}},
		{name: "ends today", daysToEnd: 0, noticeDays: 90, want: []string{"30_days", "14_days", "7_days", "1_days"}},
		{name: "notice deadline in four days", daysToEnd: 25, noticeDays: 21, want: []string{"30_days", "notice_deadline"}},
		{name: "default notice period", daysToEnd: 30, noticeDays: 0, want: []string{"30_days", "notice_deadline"}},
		{name: "notice deadline passed", daysToEnd: 12, noticeDays: 30, want: []string{"30_days", "14_days"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deadline := model.ContractDeadline{
				AnalysisID:       uuid.New(),
				TenantID:         uuid.New(),
				ContractType:     valueobject.ContractTypeSaaS,
				Counterparty:     "Acme GmbH",
				EndDate:          today.AddDate(0, 0, tt.daysToEnd),
				NoticePeriodDays: tt.noticeDays,
			}
			alerts := planner.Plan(deadline, today)
			assert.Equal(t, tt.want, alertTypes(alerts))
		})
	}
}

func TestDeadlinePlanner_Messages(t *testing.T) {
	today := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	planner := service.NewDeadlinePlanner(0)
	assert.Equal(t, service.DefaultDeadlineHorizonDays, planner.HorizonDays())

	alerts := planner.Plan(model.ContractDeadline{
		AnalysisID:       uuid.New(),
		ContractType:     valueobject.ContractTypeVendor,
		Counterparty:     "Teile AG",
		EndDate:          time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		NoticePeriodDays: 30,
		AutoRenewal:      true,
	}, today)

	require.Len(t, alerts, 2)
	assert.Equal(t, 30, alerts[0].DaysUntil)
	assert.Equal(t, "Teile AG (vendor) endet in 30 Tagen am 31.03.2026.", alerts[0].Message)
	assert.True(t, valueobject.AlertTypeNoticeDeadline.Equal(alerts[1].Type))
	assert.Equal(t, 0, alerts[1].DaysUntil)
	assert.Equal(t, "2026-03-01", alerts[1].Deadline.Format("2006-01-02"))
	assert.Contains(t, alerts[1].Message, "verlängert sich der Vertrag automatisch")
}
