package service

import (
	"fmt"

	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/model"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/valueobject"
)

const (
	maxProbationMonths     = 6
	minVacationDaysPerYear = 20
)

// EmploymentEngine scores German employment contracts. Every rule it knows
// concerns a statutory limit, so all of its findings are CRITICAL.
type EmploymentEngine struct{}

// NewEmploymentEngine creates a new EmploymentEngine.
func NewEmploymentEngine() *EmploymentEngine {
	return &EmploymentEngine{}
}

// Assess runs the probation, overtime, non-compete and vacation checks.
func (e *EmploymentEngine) Assess(data *model.EmploymentData) model.RiskAssessment {
	if data == nil {
		data = &model.EmploymentData{}
	}

	findings := make([]model.ClauseRisk, 0, 4)
	findings = appendFinding(findings, e.checkProbation(data))
	findings = appendFinding(findings, e.checkOvertime(data))
	findings = appendFinding(findings, e.checkNonCompete(data))
	findings = appendFinding(findings, e.checkVacation(data))

	job := data.JobTitle
	if job == "" {
		job = "Arbeitnehmer"
	}

	return Aggregate(findings, nil, func(score int, level valueobject.RiskLevel, critical int) string {
		switch {
		case level.Equal(valueobject.RiskLevelCritical):
			return fmt.Sprintf("KRITISCH: Der Arbeitsvertrag für %s weist %d kritische Mängel auf. Vor Unterzeichnung rechtliche Prüfung empfohlen.", job, critical)
		case level.Equal(valueobject.RiskLevelHigh):
			return fmt.Sprintf("ERHÖHTES RISIKO: Vertragsanalyse zeigt Verhandlungsbedarf. Score: %d/100.", score)
		default:
			return fmt.Sprintf("WEITGEHEND MARKTKONFORM: Keine kritischen Mängel. Score: %d/100.", score)
		}
	})
}

func (e *EmploymentEngine) checkProbation(data *model.EmploymentData) *model.ClauseRisk {
	if data.Probation == nil || data.Probation.DurationMonths == nil {
		return nil
	}
	months := *data.Probation.DurationMonths
	if months <= maxProbationMonths {
		return nil
	}
	return &model.ClauseRisk{
		Category:         valueobject.ClauseCategoryProbation,
		ClauseText:       fmt.Sprintf("Probezeit: %s Monate", months),
		RiskLevel:        valueobject.RiskLevelCritical,
		RiskScore:        95,
		LegalValidity:    valueobject.LegalValidityInvalid,
		IssueTitle:       "Probezeit überschreitet 6 Monate",
		IssueDescription: "Maximum nach § 622 Abs. 3 BGB sind 6 Monate.",
		LegalBasis:       "§ 622 Abs. 3 BGB",
		Recommendation:   "Probezeit auf max. 6 Monate reduzieren.",
	}
}

// checkOvertime flags flat-rate overtime compensation without an hour cap.
// A cap of zero hours counts as no cap.
func (e *EmploymentEngine) checkOvertime(data *model.EmploymentData) *model.ClauseRisk {
	wc := data.WorkingConditions
	if wc == nil || !bool(wc.OvertimeIncludedInSalary) {
		return nil
	}
	if wc.OvertimeCapHours != nil && *wc.OvertimeCapHours > 0 {
		return nil
	}
	clause := wc.OvertimeClause
	if clause == "" {
		clause = "Überstunden abgegolten"
	}
	return &model.ClauseRisk{
		Category:         valueobject.ClauseCategoryOvertime,
		ClauseText:       clause,
		RiskLevel:        valueobject.RiskLevelCritical,
		RiskScore:        85,
		LegalValidity:    valueobject.LegalValidityPotentiallyInvalid,
		IssueTitle:       "Intransparente Überstundenabgeltung",
		IssueDescription: "Pauschale Abgeltung ohne Stundenbegrenzung ist nach BAG unwirksam.",
		LegalBasis:       "BAG 5 AZR 765/10; § 307 BGB",
		Recommendation:   "Klare Begrenzung festlegen (z.B. bis zu 10 Überstunden/Monat).",
	}
}

func (e *EmploymentEngine) checkNonCompete(data *model.EmploymentData) *model.ClauseRisk {
	nc := data.NonCompete
	if nc == nil || !bool(nc.PostEmployment) {
		return nil
	}
	if !bool(nc.MissingCompensation) && bool(nc.HasAdequateCompensation) {
		return nil
	}
	return &model.ClauseRisk{
		Category:         valueobject.ClauseCategoryNonCompete,
		ClauseText:       "Nachvertragliches Wettbewerbsverbot",
		RiskLevel:        valueobject.RiskLevelCritical,
		RiskScore:        100,
		LegalValidity:    valueobject.LegalValidityInvalid,
		IssueTitle:       "Wettbewerbsverbot ohne Karenzentschädigung",
		IssueDescription: "Ohne min. 50% Karenz ist das Verbot NICHTIG.",
		LegalBasis:       "§ 74 Abs. 2 HGB",
		Recommendation:   "Karenzentschädigung von min. 50% vereinbaren oder streichen.",
	}
}

func (e *EmploymentEngine) checkVacation(data *model.EmploymentData) *model.ClauseRisk {
	if data.Vacation == nil || data.Vacation.DaysPerYear == nil {
		return nil
	}
	days := *data.Vacation.DaysPerYear
	if days <= 0 || days >= minVacationDaysPerYear {
		return nil
	}
	return &model.ClauseRisk{
		Category:         valueobject.ClauseCategoryVacation,
		ClauseText:       fmt.Sprintf("Urlaub: %s Tage", days),
		RiskLevel:        valueobject.RiskLevelCritical,
		RiskScore:        80,
		LegalValidity:    valueobject.LegalValidityInvalid,
		IssueTitle:       "Urlaub unter gesetzlichem Minimum",
		IssueDescription: "Minimum nach § 3 BUrlG sind 20 Werktage.",
		LegalBasis:       "§ 3 BUrlG",
		Recommendation:   "Urlaubsanspruch auf min. 20 Tage erhöhen.",
	}
}

// appendFinding adds a triggered rule result, assigning its ID.
func appendFinding(findings []model.ClauseRisk, r *model.ClauseRisk) []model.ClauseRisk {
	if r == nil {
		return findings
	}
	return append(findings, model.NewClauseRisk(*r))
}
