package main

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"lensoracle/internal/abi"
	"lensoracle/internal/config"
	"lensoracle/internal/domain"
	"lensoracle/internal/host"
	"lensoracle/internal/lens"
	"lensoracle/internal/logging"
	"lensoracle/internal/oracle"
)

var (
	configPath string
	verbose    bool

	request  string
	settings string

	requestID string
	profileID string
)

var rootCmd = &cobra.Command{
	Use:           "oracle",
	Short:         "Lens profile stats oracle",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Handle one ABI-encoded request and print the encoded response",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		level := cfg.Log.Level
		if verbose {
			level = "debug"
		}
		logger, err := logging.New(level, cfg.Log.Development)
		if err != nil {
			return err
		}
		defer logger.Sync()

		data, err := hexutil.Decode(request)
		if err != nil {
			return fmt.Errorf("--request: %w", err)
		}

		client := lens.NewClient(host.NewHTTP(logger), cfg.Lens, logger)
		handler := oracle.NewHandler(client, cfg.Oracle, logger, nil)

		out, err := handler.Handle(cmd.Context(), data, settings)
		if err != nil {
			logger.Error("invocation failed", zap.Error(err))
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hexutil.Encode(out))
		return nil
	},
}

var encodeRequestCmd = &cobra.Command{
	Use:   "encode-request",
	Short: "ABI-encode a (requestId, profileId) request as the consumer contract does",
	RunE: func(cmd *cobra.Command, args []string) error {
		id, ok := math.ParseBig256(requestID)
		if !ok {
			return fmt.Errorf("--id: invalid uint256 %q", requestID)
		}
		data, err := abi.EncodeRequest(domain.Request{ID: id, ProfileID: []byte(profileID)})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hexutil.Encode(data))
		return nil
	},
}

var decodeResponseCmd = &cobra.Command{
	Use:   "decode-response <hex>",
	Short: "Decode an encoded response",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := hexutil.Decode(args[0])
		if err != nil {
			return err
		}
		resp, err := abi.DecodeResponse(data)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "type=%d request_id=%s payload=%d\n", resp.Type, resp.RequestID, resp.Payload)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.yaml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd.Flags().StringVar(&request, "request", "", "0x-prefixed ABI-encoded request")
	runCmd.Flags().StringVar(&settings, "settings", "", "job settings (API url override)")
	_ = runCmd.MarkFlagRequired("request")

	encodeRequestCmd.Flags().StringVar(&requestID, "id", "0", "request id (decimal or 0x hex)")
	encodeRequestCmd.Flags().StringVar(&profileID, "profile", "", "Lens profile id, e.g. 0x01")

	rootCmd.AddCommand(runCmd, encodeRequestCmd, decodeResponseCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
