package cli

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vizopts/pkg/cli/config"
	"github.com/secmon-lab/vizopts/pkg/domain/model/option"
	"github.com/secmon-lab/vizopts/pkg/domain/types"
	"github.com/secmon-lab/vizopts/pkg/repository/memory"
	"github.com/secmon-lab/vizopts/pkg/usecase"
	"github.com/urfave/cli/v3"
)

var errInvalidField = goerr.New("invalid field argument")

// parseField reads "name:type" or "name:type:display name"
func parseField(s string) (*option.Field, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) < 2 || parts[0] == "" {
		return nil, goerr.Wrap(errInvalidField, "field must be name:type", goerr.V("field", s))
	}
	ft, err := types.ParseFieldType(parts[1])
	if err != nil {
		return nil, goerr.Wrap(errInvalidField, "unknown field type", goerr.V("field", s))
	}

	f := &option.Field{Name: parts[0], Type: ft}
	if len(parts) == 3 {
		f.DisplayName = parts[2]
	}
	return f, nil
}

func parseFields(args []string) ([]*option.Field, error) {
	fields := make([]*option.Field, 0, len(args))
	for _, arg := range args {
		f, err := parseField(arg)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, nil
}

func fieldFlag(dst *[]string) cli.Flag {
	return &cli.StringSliceFlag{
		Name:        "field",
		Aliases:     []string{"f"},
		Usage:       "Data field as name:type[:display name], repeatable",
		Destination: dst,
	}
}

// offlineUseCases builds use cases over an in-memory repository for commands
// working on local files
func offlineUseCases(ctx context.Context, plugins *config.Plugins) (*usecase.UseCases, error) {
	registry, err := plugins.Configure(ctx)
	if err != nil {
		return nil, err
	}
	return usecase.New(memory.New(), usecase.WithRegistry(registry))
}
