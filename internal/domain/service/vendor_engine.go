package service

import (
	"fmt"
	"strings"

	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/model"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/valueobject"
)

const (
	minWarrantyMonths = 12
	minPaymentDays    = 14
)

// VendorEngine scores supplier (procurement) contracts.
type VendorEngine struct{}

// NewVendorEngine creates a new VendorEngine.
func NewVendorEngine() *VendorEngine {
	return &VendorEngine{}
}

// Assess runs the warranty, liability, payment, audit and pricing checks.
func (e *VendorEngine) Assess(data *model.VendorData) model.RiskAssessment {
	if data == nil {
		data = &model.VendorData{}
	}

	findings := make([]model.ClauseRisk, 0, 5)
	findings = appendFinding(findings, e.checkWarranty(data.Warranty))
	findings = appendFinding(findings, e.checkLiability(data.Liability))
	findings = appendFinding(findings, e.checkPayment(data.Payment))
	findings = appendFinding(findings, e.checkAuditRights(data.Quality))
	findings = appendFinding(findings, e.checkPriceAdjustment(data.Pricing))

	supplier := model.PartyName(data.Supplier, "Lieferant")
	subject := data.ContractSubject
	if subject == "" {
		subject = "Lieferung"
	}

	return Aggregate(findings, nil, func(score int, level valueobject.RiskLevel, critical int) string {
		switch {
		case level.Equal(valueobject.RiskLevelCritical):
			return fmt.Sprintf("KRITISCH: Der Lieferantenvertrag mit %s fuer %s weist %d kritische Maengel auf. Nachverhandlung dringend empfohlen.", supplier, subject, critical)
		case level.Equal(valueobject.RiskLevelHigh):
			return fmt.Sprintf("ERHOEHTES RISIKO: Der Vertrag mit %s zeigt Verbesserungsbedarf bei Gewaehrleistung oder Haftung. Score: %d/100.", supplier, score)
		default:
			return fmt.Sprintf("AKZEPTABEL: Der Lieferantenvertrag mit %s entspricht weitgehend dem Marktstandard. Score: %d/100.", supplier, score)
		}
	})
}

// checkWarranty reports an absent warranty period as well as one shorter
// than 12 months. The statutory period is 24 months.
func (e *VendorEngine) checkWarranty(w *model.WarrantyTerms) *model.ClauseRisk {
	if w == nil || w.DurationMonths == nil {
		return &model.ClauseRisk{
			Category:         valueobject.ClauseCategoryOther,
			ClauseText:       "Keine Gewaehrleistungsregelung gefunden",
			RiskLevel:        valueobject.RiskLevelCritical,
			RiskScore:        90,
			LegalValidity:    valueobject.LegalValidityRequiresReview,
			IssueTitle:       "Fehlende Gewaehrleistung",
			IssueDescription: "Der Vertrag enthaelt keine explizite Gewaehrleistungsregelung. Es gelten die gesetzlichen Regelungen (24 Monate), aber dies sollte vertraglich klargestellt werden.",
			LegalBasis:       "§§ 434 ff. BGB",
			Recommendation:   "Gewaehrleistungsfrist von mindestens 24 Monaten vertraglich vereinbaren.",
		}
	}

	months := *w.DurationMonths
	if months >= minWarrantyMonths {
		return nil
	}
	return &model.ClauseRisk{
		Category:         valueobject.ClauseCategoryOther,
		ClauseText:       fmt.Sprintf("Gewaehrleistung: %s Monate", months),
		RiskLevel:        valueobject.RiskLevelCritical,
		RiskScore:        85,
		LegalValidity:    valueobject.LegalValidityRequiresReview,
		IssueTitle:       "Zu kurze Gewaehrleistungsfrist",
		IssueDescription: fmt.Sprintf("Die Gewaehrleistungsfrist von %s Monaten ist sehr kurz. Gesetzlich sind 24 Monate vorgesehen.", months),
		LegalBasis:       "§ 438 BGB",
		Recommendation:   "Gewaehrleistungsfrist auf mindestens 24 Monate erhoehen.",
	}
}

func (e *VendorEngine) checkLiability(l *model.VendorLiability) *model.ClauseRisk {
	if l == nil || strings.ToLower(strings.TrimSpace(l.CapType)) != "excluded" {
		return nil
	}
	return &model.ClauseRisk{
		Category:         valueobject.ClauseCategoryLiabilityCap,
		ClauseText:       "Haftung ausgeschlossen",
		RiskLevel:        valueobject.RiskLevelCritical,
		RiskScore:        95,
		LegalValidity:    valueobject.LegalValidityInvalid,
		IssueTitle:       "Vollstaendiger Haftungsausschluss",
		IssueDescription: "Ein vollstaendiger Haftungsausschluss ist in AGB unwirksam und auch individualvertraglich problematisch.",
		LegalBasis:       "§ 309 Nr. 7 BGB",
		Recommendation:   "Angemessene Haftungsregelung mit verhaeltnismaessigem Cap vereinbaren.",
	}
}

func (e *VendorEngine) checkPayment(p *model.PaymentTerms) *model.ClauseRisk {
	if p == nil || p.PaymentDays == nil {
		return nil
	}
	days := *p.PaymentDays
	if days <= 0 || days >= minPaymentDays {
		return nil
	}
	return &model.ClauseRisk{
		Category:         valueobject.ClauseCategoryOther,
		ClauseText:       fmt.Sprintf("Zahlungsziel: %s Tage", days),
		RiskLevel:        valueobject.RiskLevelMedium,
		RiskScore:        45,
		LegalValidity:    valueobject.LegalValidityValid,
		IssueTitle:       "Kurzes Zahlungsziel",
		IssueDescription: fmt.Sprintf("Das Zahlungsziel von %s Tagen ist kurz und kann Liquiditaetsdruck erzeugen.", days),
		LegalBasis:       "Marktstandard",
		Recommendation:   "Zahlungsziel von mindestens 30 Tagen verhandeln.",
	}
}

func (e *VendorEngine) checkAuditRights(q *model.QualityTerms) *model.ClauseRisk {
	if q != nil && bool(q.AuditRights) {
		return nil
	}
	return &model.ClauseRisk{
		Category:         valueobject.ClauseCategoryOther,
		ClauseText:       "Keine Auditrechte vereinbart",
		RiskLevel:        valueobject.RiskLevelHigh,
		RiskScore:        60,
		LegalValidity:    valueobject.LegalValidityValid,
		IssueTitle:       "Fehlende Auditrechte",
		IssueDescription: "Ohne Auditrechte kann die Qualitaet und Compliance des Lieferanten nicht ueberprueft werden.",
		LegalBasis:       "Lieferkettensorgfaltspflichtengesetz (LkSG)",
		Recommendation:   "Auditrechte fuer Qualitaet und Compliance vereinbaren.",
	}
}

func (e *VendorEngine) checkPriceAdjustment(p *model.VendorPricing) *model.ClauseRisk {
	if p == nil || strings.TrimSpace(p.PriceAdjustmentClause) == "" || strings.TrimSpace(p.PriceAdjustmentIndex) != "" {
		return nil
	}
	return &model.ClauseRisk{
		Category:         valueobject.ClauseCategoryPriceAdjustment,
		ClauseText:       p.PriceAdjustmentClause,
		RiskLevel:        valueobject.RiskLevelHigh,
		RiskScore:        65,
		LegalValidity:    valueobject.LegalValidityValid,
		IssueTitle:       "Unbestimmte Preisanpassung",
		IssueDescription: "Die Preisanpassungsklausel ist nicht an einen objektiven Index gebunden.",
		LegalBasis:       "§ 307 BGB",
		Recommendation:   "Preisanpassung an einen objektiven Index (z.B. Erzeugerpreisindex) binden.",
	}
}
