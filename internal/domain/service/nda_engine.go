package service

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/model"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/valueobject"
)

const maxNDADurationYears = 10

var highPenaltyThreshold = decimal.NewFromInt(100000)

const (
	// MissingClauseStandardExclusions is reported when the NDA lists no exclusions.
	MissingClauseStandardExclusions = "Standardausnahmen (öffentlich bekannt, rechtmäßig erhalten, eigenständig entwickelt)"

	// MissingClauseReturnOrDestruction is reported when neither return nor destruction is agreed.
	MissingClauseReturnOrDestruction = "Rückgabe- oder Vernichtungspflicht nach Vertragsende"
)

var ndaTypeLabels = map[string]string{
	"unilateral":   "einseitiges ",
	"mutual":       "gegenseitiges ",
	"multilateral": "Mehrparteien-",
}

// NDAEngine scores non-disclosure agreements.
type NDAEngine struct{}

// NewNDAEngine creates a new NDAEngine.
func NewNDAEngine() *NDAEngine {
	return &NDAEngine{}
}

// Assess runs the duration, scope, penalty, exclusion and return checks.
func (e *NDAEngine) Assess(data *model.NDAData) model.RiskAssessment {
	if data == nil {
		data = &model.NDAData{}
	}

	missing := make([]string, 0, 2)
	findings := make([]model.ClauseRisk, 0, 6)
	findings = appendFinding(findings, e.checkIndefinite(data))
	findings = appendFinding(findings, e.checkDuration(data))
	findings = appendFinding(findings, e.checkDefinition(data))
	findings = appendFinding(findings, e.checkPenalty(data))
	if exclusions := e.checkExclusions(data); exclusions != nil {
		findings = appendFinding(findings, exclusions)
		missing = append(missing, MissingClauseStandardExclusions)
	}
	if !bool(data.ReturnOfInformation) && !bool(data.DestructionOfInformation) {
		missing = append(missing, MissingClauseReturnOrDestruction)
	}

	label := ndaTypeLabels[strings.ToLower(strings.TrimSpace(data.NDAType))]

	return Aggregate(findings, missing, func(score int, level valueobject.RiskLevel, critical int) string {
		switch {
		case level.Equal(valueobject.RiskLevelCritical):
			return fmt.Sprintf("KRITISCH: Das %sNDA weist %d kritische Mängel auf. Nachverhandlung empfohlen. Score: %d/100.", label, critical, score)
		case level.Equal(valueobject.RiskLevelHigh):
			return fmt.Sprintf("ERHÖHTES RISIKO: Das %sNDA zeigt Verbesserungsbedarf. Score: %d/100.", label, score)
		default:
			return fmt.Sprintf("AKZEPTABEL: Das %sNDA entspricht weitgehend dem Marktstandard. Score: %d/100.", label, score)
		}
	})
}

func (e *NDAEngine) checkIndefinite(data *model.NDAData) *model.ClauseRisk {
	if !bool(data.DurationIndefinite) {
		return nil
	}
	return &model.ClauseRisk{
		Category:         valueobject.ClauseCategoryTermination,
		ClauseText:       "Unbefristete Geheimhaltungspflicht",
		RiskLevel:        valueobject.RiskLevelCritical,
		RiskScore:        85,
		LegalValidity:    valueobject.LegalValidityRequiresReview,
		IssueTitle:       "Unbefristete Geheimhaltung",
		IssueDescription: "Die Geheimhaltungspflicht ist zeitlich unbegrenzt. Dies ist unüblich und kann unverhältnismäßig sein. Marktstandard sind 3-5 Jahre.",
		LegalBasis:       "§ 307 BGB (Angemessenheit)",
		Recommendation:   "Geheimhaltungspflicht auf 3-5 Jahre nach Vertragsende begrenzen.",
	}
}

func (e *NDAEngine) checkDuration(data *model.NDAData) *model.ClauseRisk {
	if data.DurationYears == nil || *data.DurationYears <= maxNDADurationYears {
		return nil
	}
	years := *data.DurationYears
	return &model.ClauseRisk{
		Category:         valueobject.ClauseCategoryTermination,
		ClauseText:       fmt.Sprintf("Laufzeit: %s Jahre", years),
		RiskLevel:        valueobject.RiskLevelHigh,
		RiskScore:        65,
		LegalValidity:    valueobject.LegalValidityValid,
		IssueTitle:       "Überlange Geheimhaltungsfrist",
		IssueDescription: fmt.Sprintf("Die Geheimhaltungspflicht von %s Jahren ist ungewöhnlich lang. Marktstandard sind 3-5 Jahre.", years),
		LegalBasis:       "Marktüblichkeit",
		Recommendation:   "Kürzere Laufzeit von max. 5 Jahren verhandeln.",
	}
}

func (e *NDAEngine) checkDefinition(data *model.NDAData) *model.ClauseRisk {
	definition := strings.ToLower(data.DefinitionConfidential)
	if !strings.Contains(definition, "alle") || !strings.Contains(definition, "informationen") {
		return nil
	}
	return &model.ClauseRisk{
		Category:         valueobject.ClauseCategoryNonCompete,
		ClauseText:       data.DefinitionConfidential,
		RiskLevel:        valueobject.RiskLevelHigh,
		RiskScore:        60,
		LegalValidity:    valueobject.LegalValidityRequiresReview,
		IssueTitle:       "Zu weite Definition vertraulicher Informationen",
		IssueDescription: "Die Definition 'alle Informationen' ist sehr weit gefasst und könnte auch triviale Informationen umfassen.",
		LegalBasis:       "§ 307 BGB (Transparenzgebot)",
		Recommendation:   "Definition präzisieren: nur markierte oder ausdrücklich als vertraulich bezeichnete Informationen.",
	}
}

// checkPenalty flags penalties above 100,000 EUR. A penalty owed per
// violation is HIGH, a one-off penalty MEDIUM.
func (e *NDAEngine) checkPenalty(data *model.NDAData) *model.ClauseRisk {
	if !data.PenaltyAmount.Valid || !data.PenaltyAmount.Decimal.GreaterThan(highPenaltyThreshold) {
		return nil
	}
	amount := data.PenaltyAmount.Decimal
	perViolation := bool(data.PenaltyPerViolation)

	clause := data.PenaltyClause
	if clause == "" {
		clause = fmt.Sprintf("Vertragsstrafe: %s EUR", amount.String())
	}

	level, score, suffix := valueobject.RiskLevelMedium, 50, ""
	if perViolation {
		level, score, suffix = valueobject.RiskLevelHigh, 70, " und gilt pro Verstoß"
	}

	return &model.ClauseRisk{
		Category:         valueobject.ClauseCategorySalary,
		ClauseText:       clause,
		RiskLevel:        level,
		RiskScore:        score,
		LegalValidity:    valueobject.LegalValidityRequiresReview,
		IssueTitle:       "Hohe Vertragsstrafe",
		IssueDescription: fmt.Sprintf("Die Vertragsstrafe von %s EUR ist erheblich%s.", formatThousands(amount), suffix),
		LegalBasis:       "§ 343 BGB (Herabsetzung)",
		Recommendation:   "Vertragsstrafe auf angemessenes Maß reduzieren oder Obergrenze vereinbaren.",
	}
}

func (e *NDAEngine) checkExclusions(data *model.NDAData) *model.ClauseRisk {
	for _, ex := range data.Exclusions {
		if strings.TrimSpace(ex) != "" {
			return nil
		}
	}
	return &model.ClauseRisk{
		Category:         valueobject.ClauseCategoryNonCompete,
		ClauseText:       "Keine Ausnahmen definiert",
		RiskLevel:        valueobject.RiskLevelMedium,
		RiskScore:        45,
		LegalValidity:    valueobject.LegalValidityValid,
		IssueTitle:       "Fehlende Standardausnahmen",
		IssueDescription: "Das NDA enthält keine üblichen Ausnahmen für öffentlich bekannte oder rechtmäßig erhaltene Informationen.",
		LegalBasis:       "Marktüblichkeit",
		Recommendation:   "Standardausnahmen aufnehmen: öffentlich bekannt, rechtmäßig von Dritten, eigenständig entwickelt, behördliche Offenlegung.",
	}
}

// formatThousands renders a whole amount with comma thousands separators.
func formatThousands(d decimal.Decimal) string {
	digits := d.Round(0).Abs().StringFixed(0)
	var b strings.Builder
	if d.Round(0).IsNegative() {
		b.WriteByte('-')
	}
	for i, c := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return b.String()
}
