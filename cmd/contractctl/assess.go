package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/model"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/service"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/valueobject"
)

// levelRank orders risk levels for --fail-on.
var levelRank = map[string]int{
	valueobject.RiskLevelMinimal.String():  0,
	valueobject.RiskLevelLow.String():      1,
	valueobject.RiskLevelMedium.String():   2,
	valueobject.RiskLevelHigh.String():     3,
	valueobject.RiskLevelCritical.String(): 4,
}

var outputFormats = map[string]struct{}{"json": {}, "yaml": {}}

type assessResult struct {
	File         string               `json:"file"`
	ContractType string               `json:"contract_type"`
	Assessment   model.RiskAssessment `json:"assessment"`
}

func newAssessCmd() *cobra.Command {
	var (
		contractType string
		output       string
		failOn       string
	)
	cmd := &cobra.Command{
		Use:   "assess --type TYPE FILE...",
		Short: "Score contract field documents without a server",
		Long:  `Reads one JSON field document per file, as produced by the extractor,
and prints its risk assessment. Files are scored concurrently.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ct, err := valueobject.ContractTypeFromString(contractType)
			if err != nil {
				return err
			}
			if _, ok := outputFormats[output]; !ok {
				return fmt.Errorf("unsupported output format %q", output)
			}
			threshold := -1
			if failOn != "" {
				level, err := valueobject.RiskLevelFromString(failOn)
				if err != nil {
					return err
				}
				threshold = levelRank[level.String()]
			}

			results, err := assessFiles(cmd, ct, args)
			if err != nil {
				return err
			}
			if err := writeResults(cmd.OutOrStdout(), output, results); err != nil {
				return err
			}

			if threshold >= 0 {
				for _, r := range results {
					if levelRank[r.Assessment.OverallRiskLevel.String()] >= threshold {
						return fmt.Errorf("%s is rated %s", r.File, r.Assessment.OverallRiskLevel.String())
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&contractType, "type", "t", "", "contract type: employment, saas, nda or vendor")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format: json or yaml")
	cmd.Flags().StringVar(&failOn, "fail-on", "", "exit non-zero when any contract is rated at or above this level")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func assessFiles(cmd *cobra.Command, ct valueobject.ContractType, files []string) ([]assessResult, error) {
	engine := service.NewRiskEngine()
	results := make([]assessResult, len(files))

	g, _ := errgroup.WithContext(cmd.Context())
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, file := range files {
		g.Go(func() error {
			raw, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", file, err)
			}
			data, err := model.DecodeContractData(ct, raw)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			assessment, err := engine.Assess(data)
			if err != nil {
				return fmt.Errorf("failed to assess %s: %w", file, err)
			}
			results[i] = assessResult{File: filepath.Base(file), ContractType: ct.String(), Assessment: assessment}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func writeResults(w io.Writer, format string, results []assessResult) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case "yaml":
		// Go through JSON so YAML keys match the API field names.
		raw, err := json.Marshal(results)
		if err != nil {
			return err
		}
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
