package cli

import (
	"context"
	"io"
)

// RunWithWriter runs the app with command output sent to w
func RunWithWriter(ctx context.Context, w io.Writer, args []string) error {
	return newApp("test", w).Run(ctx, args)
}

// ParseField is exported for testing
var ParseField = parseField

// GetIndexConfig is exported for testing
var GetIndexConfig = getIndexConfig

// Revalidate is exported for testing
var Revalidate = revalidate

// OfflineUseCases is exported for testing
var OfflineUseCases = offlineUseCases

// CmdMigrate is exported for testing
var CmdMigrate = cmdMigrate
