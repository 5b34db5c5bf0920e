package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/google/uuid"
	"github.com/streamforge/media-access-service/internal/application"
	"github.com/streamforge/media-access-service/internal/domain"
)

type MediaAccessInternalService interface {
	CheckAccess(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type MediaAccessInternalServer struct {
	service *application.Service
}

func NewMediaAccessInternalServer(service *application.Service) *MediaAccessInternalServer {
	return &MediaAccessInternalServer{service: service}
}

func Register(server grpc.ServiceRegistrar, svc MediaAccessInternalService) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: "streamforge.media.v1.MediaAccessInternalService",
		HandlerType: (*MediaAccessInternalService)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "CheckAccess",
				Handler:    checkAccessHandler(svc),
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "contracts/proto/media/v1/media_access_internal.proto",
	}, svc)
}

func (s *MediaAccessInternalServer) CheckAccess(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID, err := uuidField(req, "user_id")
	if err != nil {
		return nil, err
	}
	contentID, err := uuidField(req, "content_id")
	if err != nil {
		return nil, err
	}

	result, err := s.service.CheckAccess(ctx, userID, contentID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrContentNotFound):
			return nil, status.Error(codes.NotFound, "content not found")
		default:
			return nil, status.Error(codes.Internal, "access check failed")
		}
	}

	resp, err := structpb.NewStruct(map[string]any{
		"granted": result.Granted,
		"reason":  string(result.Reason),
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "build response: %v", err)
	}
	return resp, nil
}

func uuidField(req *structpb.Struct, name string) (uuid.UUID, error) {
	val := req.GetFields()[name]
	if val == nil || val.GetStringValue() == "" {
		return uuid.Nil, status.Errorf(codes.InvalidArgument, "missing %s", name)
	}
	id, err := uuid.Parse(val.GetStringValue())
	if err != nil {
		return uuid.Nil, status.Errorf(codes.InvalidArgument, "invalid %s", name)
	}
	return id, nil
}

func checkAccessHandler(svc MediaAccessInternalService) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		req := &structpb.Struct{}
		if err := dec(req); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return svc.CheckAccess(ctx, req)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: "/streamforge.media.v1.MediaAccessInternalService/CheckAccess",
		}
		handler := func(ctx context.Context, req any) (any, error) {
			typed, ok := req.(*structpb.Struct)
			if !ok {
				return nil, status.Error(codes.InvalidArgument, "invalid request type")
			}
			return svc.CheckAccess(ctx, typed)
		}
		return interceptor(ctx, req, info, handler)
	}
}
