package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/model"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/valueobject"
)

const (
	minRenewalNoticeDays = 30
	minUptimePercentage  = 99.5
	minLiabilityMultiple = 12
	hoursPerYear         = 365 * 24
)

// MissingClauseServiceCredits is reported when the SLA has no credit mechanism.
const MissingClauseServiceCredits = "Service Credits bei SLA-Verletzung"

// SaaSEngine scores SaaS subscription contracts with a focus on GDPR
// compliance, availability and lock-in.
type SaaSEngine struct{}

// NewSaaSEngine creates a new SaaSEngine.
func NewSaaSEngine() *SaaSEngine {
	return &SaaSEngine{}
}

// Assess runs all SaaS checks. Absent sections are treated as empty, so a
// missing data_protection block still reports the missing DPA and export format.
func (e *SaaSEngine) Assess(data *model.SaaSData) model.RiskAssessment {
	if data == nil {
		data = &model.SaaSData{}
	}
	dp := data.DataProtection
	if dp == nil {
		dp = &model.DataProtectionTerms{}
	}

	missing := make([]string, 0, 1)
	findings := make([]model.ClauseRisk, 0, 7)
	findings = appendFinding(findings, e.checkAutoRenewal(data.ContractTerm))
	findings = appendFinding(findings, e.checkDPA(dp))
	findings = appendFinding(findings, e.checkDataLocation(dp))
	findings = appendFinding(findings, e.checkSLA(data.SLA))
	if data.SLA == nil || strings.TrimSpace(data.SLA.CreditMechanism) == "" {
		missing = append(missing, MissingClauseServiceCredits)
	}
	findings = appendFinding(findings, e.checkLiability(data.Liability))
	findings = appendFinding(findings, e.checkDataExport(dp))
	findings = appendFinding(findings, e.checkPriceEscalation(data.Pricing))

	service := data.ServiceName
	if service == "" {
		service = "SaaS-Service"
	}
	provider := model.PartyName(data.Provider, "Anbieter")

	return Aggregate(findings, missing, func(score int, level valueobject.RiskLevel, critical int) string {
		switch {
		case level.Equal(valueobject.RiskLevelCritical):
			return fmt.Sprintf("KRITISCH: Der SaaS-Vertrag für %s von %s weist %d kritische Mängel auf, insbesondere bei Datenschutz und Compliance. Nachverhandlung dringend empfohlen.", service, provider, critical)
		case level.Equal(valueobject.RiskLevelHigh):
			return fmt.Sprintf("ERHÖHTES RISIKO: Der Vertrag für %s zeigt Verbesserungsbedarf bei Datenschutz, SLA oder Haftung. Score: %d/100.", service, score)
		default:
			return fmt.Sprintf("WEITGEHEND AKZEPTABEL: Der SaaS-Vertrag für %s entspricht im Wesentlichen dem Marktstandard. Score: %d/100.", service, score)
		}
	})
}

func (e *SaaSEngine) checkAutoRenewal(term *model.ContractTerm) *model.ClauseRisk {
	if term == nil || !bool(term.AutoRenewal) || term.NoticePeriodDays == nil {
		return nil
	}
	notice := *term.NoticePeriodDays
	if notice <= 0 || notice >= minRenewalNoticeDays {
		return nil
	}
	return &model.ClauseRisk{
		Category:         valueobject.ClauseCategoryAutoRenewal,
		ClauseText:       fmt.Sprintf("Auto-Renewal mit %s Tagen Kündigungsfrist", notice),
		RiskLevel:        valueobject.RiskLevelCritical,
		RiskScore:        90,
		LegalValidity:    valueobject.LegalValidityValid,
		IssueTitle:       "Kurze Kündigungsfrist bei Auto-Renewal",
		IssueDescription: fmt.Sprintf("Die Kündigungsfrist von %s Tagen vor automatischer Verlängerung ist sehr kurz. Risiko einer ungewollten Vertragsverlängerung.", notice),
		LegalBasis:       "§ 309 Nr. 9 BGB (AGB-Kontrolle)",
		Recommendation:   "Kündigungsfrist auf mindestens 30, besser 90 Tage erhöhen oder automatische Verlängerung streichen.",
	}
}

func (e *SaaSEngine) checkDPA(dp *model.DataProtectionTerms) *model.ClauseRisk {
	if bool(dp.DPAIncluded) {
		return nil
	}
	return &model.ClauseRisk{
		Category:         valueobject.ClauseCategoryDataProtection,
		ClauseText:       "Kein AVV/DPA vorhanden",
		RiskLevel:        valueobject.RiskLevelCritical,
		RiskScore:        95,
		LegalValidity:    valueobject.LegalValidityInvalid,
		IssueTitle:       "Fehlender Auftragsverarbeitungsvertrag",
		IssueDescription: "Kein AVV (Auftragsverarbeitungsvertrag) nach Art. 28 DSGVO vorhanden. Dies ist bei Verarbeitung personenbezogener Daten gesetzlich vorgeschrieben.",
		LegalBasis:       "Art. 28 DSGVO",
		Recommendation:   "AVV nach Art. 28 DSGVO abschließen. Ohne AVV ist die Nutzung des Services für personenbezogene Daten rechtswidrig.",
	}
}

// checkDataLocation uses a plain substring test: any location whose
// upper-cased text contains "EU" counts as inside the EU.
func (e *SaaSEngine) checkDataLocation(dp *model.DataProtectionTerms) *model.ClauseRisk {
	location := dp.DataLocation
	if location == "" || strings.Contains(strings.ToUpper(location), "EU") || bool(dp.DataLocationGuaranteedEU) {
		return nil
	}
	return &model.ClauseRisk{
		Category:         valueobject.ClauseCategoryDataProtection,
		ClauseText:       "Datenspeicherung: " + location,
		RiskLevel:        valueobject.RiskLevelHigh,
		RiskScore:        75,
		LegalValidity:    valueobject.LegalValidityRequiresReview,
		IssueTitle:       "Datenspeicherung außerhalb EU",
		IssueDescription: fmt.Sprintf("Daten werden in %s gespeichert. Für Übermittlung außerhalb der EU sind zusätzliche Garantien (Standardvertragsklauseln) erforderlich.", location),
		LegalBasis:       "Art. 44-49 DSGVO (Drittlandübermittlung)",
		Recommendation:   "Standardvertragsklauseln (SCC) vereinbaren oder EU-Datenspeicherung vertraglich garantieren lassen.",
	}
}

func (e *SaaSEngine) checkSLA(sla *model.SLATerms) *model.ClauseRisk {
	if sla == nil || sla.UptimePercentage == nil {
		return nil
	}
	uptime := *sla.UptimePercentage
	if uptime <= 0 || uptime >= minUptimePercentage {
		return nil
	}
	description := fmt.Sprintf("Die garantierte Verfügbarkeit von %s%% liegt unter dem Marktstandard von 99.9%%. Dies entspricht bis zu %s Stunden Ausfall pro Jahr.",
		uptime, downtimeHours(uptime.Float64()))
	return &model.ClauseRisk{
		Category:         valueobject.ClauseCategorySLA,
		ClauseText:       fmt.Sprintf("SLA: %s%% Verfügbarkeit", uptime),
		RiskLevel:        valueobject.RiskLevelMedium,
		RiskScore:        50,
		LegalValidity:    valueobject.LegalValidityValid,
		IssueTitle:       "Niedrige SLA-Garantie",
		IssueDescription: description,
		LegalBasis:       "Vertragsrecht",
		Recommendation:   "SLA auf mindestens 99.9% Verfügbarkeit verhandeln, inklusive Service Credits bei Nichteinhaltung.",
	}
}

// downtimeHours is the yearly downtime implied by an uptime percentage,
// rounded to one decimal.
func downtimeHours(uptime float64) string {
	hours := math.Round((100-uptime)*hoursPerYear/100*10) / 10
	return strconv.FormatFloat(hours, 'f', -1, 64)
}

func (e *SaaSEngine) checkLiability(l *model.SaaSLiability) *model.ClauseRisk {
	if l == nil || l.CapMultipleAnnualFee == nil {
		return nil
	}
	multiple := *l.CapMultipleAnnualFee
	if multiple <= 0 || multiple >= minLiabilityMultiple {
		return nil
	}
	return &model.ClauseRisk{
		Category:         valueobject.ClauseCategoryLiabilityCap,
		ClauseText:       fmt.Sprintf("Haftung begrenzt auf %sx Jahresgebühr", multiple),
		RiskLevel:        valueobject.RiskLevelHigh,
		RiskScore:        65,
		LegalValidity:    valueobject.LegalValidityValid,
		IssueTitle:       "Niedrige Haftungsobergrenze",
		IssueDescription: fmt.Sprintf("Die Haftung ist auf %sx die Jahresgebühr begrenzt. Bei kritischen Systemen kann der Schaden deutlich höher sein.", multiple),
		LegalBasis:       "§ 309 Nr. 7 BGB",
		Recommendation:   "Haftungscap auf mindestens 12x Jahresgebühr erhöhen oder Versicherungsnachweis verlangen.",
	}
}

func (e *SaaSEngine) checkDataExport(dp *model.DataProtectionTerms) *model.ClauseRisk {
	if strings.TrimSpace(dp.DataExportFormat) != "" {
		return nil
	}
	return &model.ClauseRisk{
		Category:         valueobject.ClauseCategoryDataProtection,
		ClauseText:       "Kein Datenexport-Format definiert",
		RiskLevel:        valueobject.RiskLevelHigh,
		RiskScore:        70,
		LegalValidity:    valueobject.LegalValidityValid,
		IssueTitle:       "Vendor Lock-in durch fehlenden Datenexport",
		IssueDescription: "Kein Format für Datenexport bei Vertragsende vereinbart. Dies erschwert einen Anbieterwechsel erheblich.",
		LegalBasis:       "Art. 20 DSGVO (Datenportabilität)",
		Recommendation:   "Datenexport in standardisiertem Format (CSV, JSON, XML) vertraglich vereinbaren.",
	}
}

func (e *SaaSEngine) checkPriceEscalation(p *model.SaaSPricing) *model.ClauseRisk {
	if p == nil || strings.TrimSpace(p.PriceEscalationClause) == "" || strings.TrimSpace(p.PriceEscalationCap) != "" {
		return nil
	}
	return &model.ClauseRisk{
		Category:         valueobject.ClauseCategoryPriceAdjustment,
		ClauseText:       p.PriceEscalationClause,
		RiskLevel:        valueobject.RiskLevelHigh,
		RiskScore:        65,
		LegalValidity:    valueobject.LegalValidityValid,
		IssueTitle:       "Unbegrenzte Preisanpassung",
		IssueDescription: "Der Anbieter kann Preise anpassen ohne festgelegte Obergrenze. Risiko erheblicher Kostensteigerungen.",
		LegalBasis:       "§ 307 BGB (Transparenzgebot)",
		Recommendation:   "Preisanpassung auf max. 5% p.a. oder Inflationsindex begrenzen. Sonderkündigungsrecht bei Preiserhöhung vereinbaren.",
	}
}
