package cmd

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"product-images/core/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	codesFile   string
	concurrency int
)

// linkCmd represents the link command
var linkCmd = &cobra.Command{
	Use:   "link [codes...]",
	Short: "Link storage images to products",
	Long: `Resolves the image folder of each product code, lists its images in name
order and records them on the product. Codes come from the arguments and from
--file (one per line, # starts a comment). Prints a JSON report.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		codes := append([]string{}, args...)
		if codesFile != "" {
			fromFile, err := readCodesFile(codesFile)
			if err != nil {
				return err
			}
			codes = append(codes, fromFile...)
		}
		if len(codes) == 0 {
			return errors.New("no product codes given")
		}

		rt, err := bootstrap(cmd.Context(), func(cfg *config.Config) {
			if concurrency > 0 {
				cfg.Images.Concurrency = concurrency
			}
		})
		if err != nil {
			return err
		}
		defer rt.Close()

		rt.logger.Info("Linking product images", zap.Int("codes", len(codes)))
		report, runErr := rt.service.ProcessAll(cmd.Context(), codes)
		if report != nil {
			out, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode report: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
		}
		return runErr
	},
}

func readCodesFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open codes file: %w", err)
	}
	defer f.Close()
	return readCodes(f)
}

// readCodes reads one code per line, skipping blanks and # comments.
func readCodes(r io.Reader) ([]string, error) {
	var codes []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		if line = strings.TrimSpace(line); line != "" {
			codes = append(codes, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read codes: %w", err)
	}
	return codes, nil
}

func init() {
	linkCmd.Flags().StringVarP(&codesFile, "file", "f", "", "File with one product code per line")
	linkCmd.Flags().IntVarP(&concurrency, "concurrency", "c", 0, "Codes processed at once (overrides IMAGES_CONCURRENCY)")
	RootCmd.AddCommand(linkCmd)
}
