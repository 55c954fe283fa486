package grpc

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Luyzz22/contract-analyzer-backend/internal/application/dto"
	"github.com/Luyzz22/contract-analyzer-backend/internal/application/usecase"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/model"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/port"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/service"
	"github.com/Luyzz22/contract-analyzer-backend/pkg/auth"
)

// ContractHandler implements ContractRiskServiceServer on top of the use cases.
type ContractHandler struct {
	UnimplementedContractRiskServiceServer
	analyze   *usecase.AnalyzeContract
	assess    *usecase.AssessContract
	get       *usecase.GetAnalysis
	dashboard *usecase.Dashboard
	logger    *slog.Logger
}

// NewContractHandler creates a new gRPC handler.
func NewContractHandler(
	analyze *usecase.AnalyzeContract,
	assess *usecase.AssessContract,
	get *usecase.GetAnalysis,
	dashboard *usecase.Dashboard,
	logger *slog.Logger,
) *ContractHandler {
	return &ContractHandler{
		analyze:   analyze,
		assess:    assess,
		get:       get,
		dashboard: dashboard,
		logger:    logger,
	}
}

func (h *ContractHandler) AnalyzeContract(ctx context.Context, req *AnalyzeContractRequest) (*AnalysisReply, error) {
	claims, err := callerClaims(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := h.analyze.Execute(ctx, dto.AnalyzeContractRequest{
		TenantID:     claims.TenantID,
		UserID:       claims.UserID,
		ContractType: req.ContractType,
		Filename:     req.Filename,
		Text:         req.Text,
		Language:     req.Language,
	})
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &AnalysisReply{Analysis: resp}, nil
}

func (h *ContractHandler) AssessContract(ctx context.Context, req *AssessContractRequest) (*AnalysisReply, error) {
	claims, err := callerClaims(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := h.assess.Execute(ctx, dto.AssessContractRequest{
		TenantID:     claims.TenantID,
		UserID:       claims.UserID,
		ContractType: req.ContractType,
		Filename:     req.Filename,
		Data:         req.Data,
	})
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &AnalysisReply{Analysis: resp}, nil
}

func (h *ContractHandler) GetAnalysis(ctx context.Context, req *GetAnalysisRequest) (*AnalysisReply, error) {
	claims, err := callerClaims(ctx)
	if err != nil {
		return nil, err
	}
	id, err := uuid.Parse(req.AnalysisID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid analysis_id %q", req.AnalysisID)
	}
	resp, err := h.get.Execute(ctx, dto.GetAnalysisRequest{TenantID: claims.TenantID, AnalysisID: id})
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &AnalysisReply{Analysis: resp}, nil
}

func (h *ContractHandler) GetDashboard(ctx context.Context, _ *GetDashboardRequest) (*DashboardReply, error) {
	claims, err := callerClaims(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := h.dashboard.Execute(ctx, claims.TenantID)
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &DashboardReply{Dashboard: resp}, nil
}

func callerClaims(ctx context.Context) (*auth.Claims, error) {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "no claims in context")
	}
	return claims, nil
}

// toStatus maps use case errors onto gRPC status codes.
func (h *ContractHandler) toStatus(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, dto.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, service.ErrContractTypeNotInPlan):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, service.ErrQuotaExceeded):
		return status.Error(codes.ResourceExhausted, err.Error())
	case errors.Is(err, model.ErrAnalysisNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, model.ErrAnalysisNotCompleted):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, port.ErrExtractionFailed):
		h.logger.WarnContext(ctx, "contract extraction failed", slog.String("error", err.Error()))
		return status.Error(codes.Unavailable, port.ErrExtractionFailed.Error())
	default:
		h.logger.ErrorContext(ctx, "rpc failed", slog.String("error", err.Error()))
		return status.Error(codes.Internal, "internal error")
	}
}
