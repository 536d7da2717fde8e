// Package irexport is the thin, swappable encoder of the core's output (a
// solved *ast.Module plus its diagnostics) for an external IR generator
// (spec.md §1/§6, SPEC_FULL.md §6). It flattens each solved top-level
// declaration's mangled name and reified type string into a
// structpb.Struct and exposes a minimal hand-registered grpc.ServiceDesc so
// a downstream IR generator can be wired as a gRPC client without the core
// depending on generated protobuf stubs for its own data model.
//
// Grounded on funvibe-funxy's internal/evaluator/builtins_grpc.go, which
// hand-builds a grpc.ServiceDesc/MethodDesc pair from a runtime-discovered
// service rather than from generated code; the service here is static
// (one method, one shape) so it's written out directly instead of
// discovered.
package irexport

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/anzen-lang/anzen/internal/ast"
	"github.com/anzen-lang/anzen/internal/mangle"
	"github.com/anzen-lang/anzen/internal/scope"
	"github.com/anzen-lang/anzen/internal/types"
)

// Flatten walks a module's top-level declarations that carry a resolved
// QualType and encodes each as one entry in the returned structpb.Struct,
// keyed by its mangled name. Declarations the solver never reached (a
// module left in ast.StateErrored before assignment completed) are
// skipped rather than encoded with a placeholder.
func Flatten(module *ast.Module) (*structpb.Struct, error) {
	fields := make(map[string]interface{})

	for _, d := range module.Decls {
		name, qt, definingScope, ok := declSignature(d)
		if !ok {
			continue
		}
		key := mangle.Symbol(definingScope, name, qt)
		fields[key] = qt.String()
	}

	fields["module"] = module.Name

	out, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("irexport: building struct for module %q: %w", module.Name, err)
	}
	return out, nil
}

// declSignature extracts the bits Flatten needs from whichever concrete
// Decl kind carries a name and a resolved type; every other Decl kind
// (UnionTypeCaseDecl, TypeExtDecl) has no single-symbol signature of its
// own and is skipped.
func declSignature(d ast.Decl) (name string, qt *types.QualifiedType, definingScope *scope.Scope, ok bool) {
	switch v := d.(type) {
	case *ast.FunDecl:
		if v.QualType == nil || v.Symbol == nil {
			return "", nil, nil, false
		}
		return v.Name, v.QualType, v.Symbol.Scope, true
	case *ast.PropDecl:
		if v.QualType == nil || v.Symbol == nil {
			return "", nil, nil, false
		}
		return v.Name, v.QualType, v.Symbol.Scope, true
	case *ast.StructDecl:
		if v.QualType == nil || v.Symbol == nil {
			return "", nil, nil, false
		}
		return v.Name, v.QualType, v.Symbol.Scope, true
	case *ast.UnionDecl:
		if v.QualType == nil || v.Symbol == nil {
			return "", nil, nil, false
		}
		return v.Name, v.QualType, v.Symbol.Scope, true
	case *ast.InterfaceDecl:
		if v.QualType == nil || v.Symbol == nil {
			return "", nil, nil, false
		}
		return v.Name, v.QualType, v.Symbol.Scope, true
	default:
		return "", nil, nil, false
	}
}

// ExportServer is the narrow surface a downstream IR generator must
// implement to be registered as this service's gRPC handler.
type ExportServer interface {
	Export(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// ExportServiceDesc is the hand-registered grpc.ServiceDesc for the
// "anzen.irexport.ExportService/Export" unary RPC: one method, taking and returning a
// bare structpb.Struct, deliberately avoiding a generated protobuf service
// for a surface this small and internal.
var ExportServiceDesc = grpc.ServiceDesc{
	ServiceName: "anzen.irexport.ExportService",
	HandlerType: (*ExportServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Export",
			Handler:    exportHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "irexport.proto",
}

func exportHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ExportServer).Export(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/anzen.irexport.ExportService/Export",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ExportServer).Export(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// RegisterExportServer attaches impl to s under ExportServiceDesc.
func RegisterExportServer(s *grpc.Server, impl ExportServer) {
	s.RegisterService(&ExportServiceDesc, impl)
}
