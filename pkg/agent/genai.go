// Package agent adapts the capability registry to a Gemini-style function
// calling runtime. It only translates surfaces; the reasoning loop and the
// model client belong to the host.
package agent

import (
	"context"

	"github.com/goliatone/go-journey"
	"google.golang.org/genai"
)

// Declarations maps every registered capability to a function declaration the
// model can call.
func Declarations(registry *journey.Registry) []*genai.FunctionDeclaration {
	capabilities := registry.Capabilities()
	out := make([]*genai.FunctionDeclaration, 0, len(capabilities))
	for _, c := range capabilities {
		out = append(out, declaration(c))
	}
	return out
}

// Tools wraps the declarations in a single tool, which is how the runtime
// expects a capability bundle.
func Tools(registry *journey.Registry) []*genai.Tool {
	declarations := Declarations(registry)
	if len(declarations) == 0 {
		return nil
	}
	return []*genai.Tool{{FunctionDeclarations: declarations}}
}

// HandleCall dispatches a model function call through the registry and shapes
// the response the model consumes. Capability failures become an "error"
// payload rather than a Go error: the model narrates them to the user.
func HandleCall(ctx context.Context, registry *journey.Registry, call *genai.FunctionCall) *genai.FunctionResponse {
	if call == nil {
		return nil
	}

	result, err := registry.Invoke(ctx, call.Name, call.Args)
	response := map[string]any{}
	if err != nil {
		response["error"] = err.Error()
		return &genai.FunctionResponse{
			ID:       call.ID,
			Name:     call.Name,
			Response: response,
		}
	}

	if result.Text != "" {
		response["message"] = result.Text
	}
	if result.Data != nil {
		response["result"] = result.Data
	}
	if len(response) == 0 {
		response["ok"] = true
	}
	return &genai.FunctionResponse{
		ID:       call.ID,
		Name:     call.Name,
		Response: response,
	}
}

func declaration(c journey.Capability) *genai.FunctionDeclaration {
	decl := &genai.FunctionDeclaration{
		Name:        c.Name,
		Description: c.Description,
	}
	if len(c.Args) == 0 {
		return decl
	}

	properties := make(map[string]*genai.Schema, len(c.Args))
	var required []string
	for _, arg := range c.Args {
		properties[arg.Name] = &genai.Schema{
			Type:        schemaType(arg.Type),
			Description: arg.Description,
		}
		if arg.Required {
			required = append(required, arg.Name)
		}
	}
	decl.Parameters = &genai.Schema{
		Type:       genai.TypeObject,
		Properties: properties,
		Required:   required,
	}
	return decl
}

func schemaType(t journey.ArgType) genai.Type {
	switch t {
	case journey.ArgNumber:
		return genai.TypeNumber
	case journey.ArgBoolean:
		return genai.TypeBoolean
	default:
		return genai.TypeString
	}
}
