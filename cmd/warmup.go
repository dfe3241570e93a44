package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// warmupCmd represents the warmup command
var warmupCmd = &cobra.Command{
	Use:   "warmup",
	Short: "Preload the folder cache",
	Long: `Lists every folder under the configured parent once and caches each
code to folder mapping. Useful with the redis cache backend, where the cache
outlives the process.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.Close()

		inserted, err := rt.service.Warmup(cmd.Context())
		if err != nil {
			return fmt.Errorf("cache warmup failed: %w", err)
		}
		rt.logger.Info("Cache warmup finished", zap.Int("inserted", inserted))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(warmupCmd)
}
