package llm

import (
	"fmt"

	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/valueobject"
)

const baseSystemPrompt = `Kernprinzipien:
- Sachlich und präzise, deutsche Rechtsterminologie
- Nur Angaben übernehmen, die im Vertrag stehen; fehlende Angaben weglassen
- Zahlen als JSON-Zahlen, Ja/Nein-Angaben als true/false, Datumsangaben als YYYY-MM-DD
- Ausschließlich ein JSON-Objekt ausgeben, ohne Markdown und ohne Erläuterungen`

var systemPrompts = map[string]string{
	valueobject.ContractTypeEmployment.String(): "Du bist ein erfahrener Fachanwalt für Arbeitsrecht in Deutschland. " +
		"Du extrahierst die Eckdaten von Arbeitsverträgen für HR-Abteilungen und Kanzleien.",
	valueobject.ContractTypeSaaS.String(): "Du bist ein CFO-orientierter Unternehmensjurist für B2B-SaaS- und Cloud-Verträge. " +
		"Du extrahierst wirtschaftliche Kerndaten, SLA, Haftung und Datenschutzregelungen.",
	valueobject.ContractTypeNDA.String(): "Du bist ein Unternehmensjurist mit Schwerpunkt Geheimhaltungsvereinbarungen. " +
		"Du extrahierst Schutzumfang, Laufzeit, Ausnahmen und Vertragsstrafen.",
	valueobject.ContractTypeVendor.String(): "Du bist ein Einkaufsjurist für Liefer- und Rahmenverträge. " +
		"Du extrahierst Gewährleistung, Haftung, Zahlungsbedingungen und Preisanpassungen.",
}

var schemas = map[string]string{
	valueobject.ContractTypeEmployment.String(): `{
  "job_title": "<String>",
  "employer": {"name": "<String>"},
  "employee": {"name": "<String>"},
  "start_date": "<YYYY-MM-DD>",
  "probation": {"duration_months": <Zahl>},
  "working_conditions": {
    "weekly_hours": <Zahl>,
    "overtime_clause": "<Zitat>",
    "overtime_included_in_salary": <true|false>,
    "overtime_cap_hours": <Zahl>
  },
  "vacation": {"days_per_year": <Zahl>},
  "non_compete": {
    "during_employment": <true|false>,
    "post_employment": <true|false>,
    "duration_months": <Zahl>,
    "compensation_percentage": <Zahl>,
    "has_adequate_compensation": <true|false>,
    "missing_compensation": <true|false>
  },
  "termination": {
    "notice_period_employee": "<String>",
    "notice_period_employer": "<String>",
    "fixed_term": <true|false>,
    "end_date": "<YYYY-MM-DD>"
  }
}`,
	valueobject.ContractTypeSaaS.String(): `{
  "service_name": "<String>",
  "provider": {"name": "<String>"},
  "customer": {"name": "<String>"},
  "contract_term": {
    "auto_renewal": <true|false>,
    "notice_period_days": <Zahl>,
    "start_date": "<YYYY-MM-DD>",
    "end_date": "<YYYY-MM-DD>"
  },
  "data_protection": {
    "dpa_included": <true|false>,
    "data_location": "<String>",
    "data_location_guaranteed_eu": <true|false>,
    "data_export_format": "<String>"
  },
  "sla": {"uptime_percentage": <Zahl>, "credit_mechanism": "<String>"},
  "liability": {"cap_multiple_annual_fee": <Zahl>},
  "pricing": {
    "annual_contract_value": <Zahl>,
    "price_escalation_clause": "<Zitat>",
    "price_escalation_cap": "<String>"
  }
}`,
	valueobject.ContractTypeNDA.String(): `{
  "nda_type": "<unilateral|mutual|multilateral>",
  "disclosing_party": {"name": "<String>"},
  "receiving_party": {"name": "<String>"},
  "purpose": "<String>",
  "definition_confidential": "<Zitat>",
  "exclusions": ["<String>"],
  "duration_years": <Zahl>,
  "duration_indefinite": <true|false>,
  "penalty_clause": "<Zitat>",
  "penalty_amount": <Zahl>,
  "penalty_per_violation": <true|false>,
  "return_of_information": <true|false>,
  "destruction_of_information": <true|false>,
  "end_date": "<YYYY-MM-DD>"
}`,
	valueobject.ContractTypeVendor.String(): `{
  "supplier": {"name": "<String>"},
  "buyer": {"name": "<String>"},
  "contract_subject": "<String>",
  "contract_term": {
    "auto_renewal": <true|false>,
    "notice_period_days": <Zahl>,
    "start_date": "<YYYY-MM-DD>",
    "end_date": "<YYYY-MM-DD>"
  },
  "contract_value": <Zahl>,
  "warranty": {"duration_months": <Zahl>},
  "liability": {"cap_type": "<unlimited|capped|excluded>"},
  "payment": {"payment_days": <Zahl>},
  "quality": {"audit_rights": <true|false>},
  "pricing": {"price_adjustment_clause": "<Zitat>", "price_adjustment_index": "<String>"}
}`,
}

// SystemPrompt returns the system instruction for a contract type.
func SystemPrompt(ct valueobject.ContractType) (string, error) {
	role, ok := systemPrompts[ct.String()]
	if !ok {
		return "", fmt.Errorf("no prompt for contract type %q", ct.String())
	}
	return role + "\n\n" + baseSystemPrompt, nil
}

// UserPrompt asks for the field document of ct, filled from text.
func UserPrompt(ct valueobject.ContractType, text string) (string, error) {
	schema, ok := schemas[ct.String()]
	if !ok {
		return "", fmt.Errorf("no schema for contract type %q", ct.String())
	}
	return "Extrahiere die Vertragsdaten in genau diese JSON-Struktur. " +
		"Felder ohne Entsprechung im Vertrag werden weggelassen.\n\n" +
		schema +
		"\n\nVERTRAGSTEXT:\n\"\"\"\n" + text + "\n\"\"\"", nil
}
