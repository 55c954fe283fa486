package grpc

import (
	"context"
	"encoding/json"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Luyzz22/contract-analyzer-backend/internal/application/dto"
)

// ServiceName is the fully qualified name of the contract risk service.
const ServiceName = "contract.v1.ContractRiskService"

// Full method names, as seen by interceptors.
const (
	MethodAnalyzeContract = "/" + ServiceName + "/AnalyzeContract"
	MethodAssessContract  = "/" + ServiceName + "/AssessContract"
	MethodGetAnalysis     = "/" + ServiceName + "/GetAnalysis"
	MethodGetDashboard    = "/" + ServiceName + "/GetDashboard"
)

// AnalyzeContractRequest submits raw contract text for extraction and scoring.
type AnalyzeContractRequest struct {
	ContractType string `json:"contract_type"`
	Filename     string `json:"filename"`
	Text         string `json:"text"`
	Language     string `json:"language,omitempty"`
}

// AssessContractRequest submits already structured contract data.
type AssessContractRequest struct {
	ContractType string          `json:"contract_type"`
	Filename     string          `json:"filename"`
	Data         json.RawMessage `json:"data"`
}

// GetAnalysisRequest looks up one analysis of the caller's tenant.
type GetAnalysisRequest struct {
	AnalysisID string `json:"analysis_id"`
}

// GetDashboardRequest has no fields; the tenant comes from the token.
type GetDashboardRequest struct{}

// AnalysisReply wraps a stored analysis.
type AnalysisReply struct {
	Analysis dto.AnalysisResponse `json:"analysis"`
}

// DashboardReply wraps the tenant dashboard.
type DashboardReply struct {
	Dashboard dto.DashboardResponse `json:"dashboard"`
}

// ContractRiskServiceServer is the server API of ContractRiskService.
type ContractRiskServiceServer interface {
	AnalyzeContract(context.Context, *AnalyzeContractRequest) (*AnalysisReply, error)
	AssessContract(context.Context, *AssessContractRequest) (*AnalysisReply, error)
	GetAnalysis(context.Context, *GetAnalysisRequest) (*AnalysisReply, error)
	GetDashboard(context.Context, *GetDashboardRequest) (*DashboardReply, error)
}

// UnimplementedContractRiskServiceServer answers every method with Unimplemented.
type UnimplementedContractRiskServiceServer struct{}

func (UnimplementedContractRiskServiceServer) AnalyzeContract(context.Context, *AnalyzeContractRequest) (*AnalysisReply, error) {
	return nil, status.Error(codes.Unimplemented, "method AnalyzeContract not implemented")
}
func (UnimplementedContractRiskServiceServer) AssessContract(context.Context, *AssessContractRequest) (*AnalysisReply, error) {
	return nil, status.Error(codes.Unimplemented, "method AssessContract not implemented")
}
func (UnimplementedContractRiskServiceServer) GetAnalysis(context.Context, *GetAnalysisRequest) (*AnalysisReply, error) {
	return nil, status.Error(codes.Unimplemented, "method GetAnalysis not implemented")
}
func (UnimplementedContractRiskServiceServer) GetDashboard(context.Context, *GetDashboardRequest) (*DashboardReply, error) {
	return nil, status.Error(codes.Unimplemented, "method GetDashboard not implemented")
}

// RegisterContractRiskServiceServer registers srv with s.
func RegisterContractRiskServiceServer(s grpclib.ServiceRegistrar, srv ContractRiskServiceServer) {
	s.RegisterService(&contractRiskServiceDesc, srv)
}

var contractRiskServiceDesc = grpclib.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ContractRiskServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "AnalyzeContract", Handler: unaryHandler(MethodAnalyzeContract, ContractRiskServiceServer.AnalyzeContract)},
		{MethodName: "AssessContract", Handler: unaryHandler(MethodAssessContract, ContractRiskServiceServer.AssessContract)},
		{MethodName: "GetAnalysis", Handler: unaryHandler(MethodGetAnalysis, ContractRiskServiceServer.GetAnalysis)},
		{MethodName: "GetDashboard", Handler: unaryHandler(MethodGetDashboard, ContractRiskServiceServer.GetDashboard)},
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "contract/v1/contract.proto",
}

// unaryHandler adapts a typed server method to grpc.MethodHandler,
// running the interceptor chain when one is installed.
func unaryHandler[Req, Resp any](
	fullMethod string,
	call func(ContractRiskServiceServer, context.Context, *Req) (*Resp, error),
) grpclib.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		server := srv.(ContractRiskServiceServer)
		if interceptor == nil {
			return call(server, ctx, in)
		}
		info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(server, ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ContractRiskServiceClient is the client API of ContractRiskService.
type ContractRiskServiceClient struct {
	cc grpclib.ClientConnInterface
}

// NewContractRiskServiceClient creates a client that speaks the JSON codec.
func NewContractRiskServiceClient(cc grpclib.ClientConnInterface) *ContractRiskServiceClient {
	return &ContractRiskServiceClient{cc: cc}
}

func (c *ContractRiskServiceClient) AnalyzeContract(ctx context.Context, in *AnalyzeContractRequest, opts ...grpclib.CallOption) (*AnalysisReply, error) {
	out := new(AnalysisReply)
	if err := c.invoke(ctx, MethodAnalyzeContract, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ContractRiskServiceClient) AssessContract(ctx context.Context, in *AssessContractRequest, opts ...grpclib.CallOption) (*AnalysisReply, error) {
	out := new(AnalysisReply)
	if err := c.invoke(ctx, MethodAssessContract, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ContractRiskServiceClient) GetAnalysis(ctx context.Context, in *GetAnalysisRequest, opts ...grpclib.CallOption) (*AnalysisReply, error) {
	out := new(AnalysisReply)
	if err := c.invoke(ctx, MethodGetAnalysis, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ContractRiskServiceClient) GetDashboard(ctx context.Context, in *GetDashboardRequest, opts ...grpclib.CallOption) (*DashboardReply, error) {
	out := new(DashboardReply)
	if err := c.invoke(ctx, MethodGetDashboard, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ContractRiskServiceClient) invoke(ctx context.Context, method string, in, out any, opts []grpclib.CallOption) error {
	opts = append([]grpclib.CallOption{grpclib.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}
