// Package cmd - quote and shop commands
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"freight-rate/adapters/store"
	"freight-rate/core/engine"
	"freight-rate/core/types"
	"freight-rate/internal/config"
	"freight-rate/internal/logging"
)

var (
	carrierID        string
	allowMissingZone bool
)

// quoteCmd rates one carrier against a shipment file
var quoteCmd = &cobra.Command{
	Use:   "quote [shipment.json]",
	Short: "Rate one carrier against a shipment",
	Long: `Price a shipment against a single carrier's configuration.

The shipment file is a JSON document with packages, origin,
destination and optional accessorial codes.

Examples:
  freight-rate quote --carrier acme shipment.json
  freight-rate quote --carrier acme --allow-missing-zones shipment.json`,
	Args: cobra.ExactArgs(1),
	RunE: runQuote,
}

// shopCmd rates every configured carrier against a shipment file
var shopCmd = &cobra.Command{
	Use:   "shop [shipment.json]",
	Short: "Rate every configured carrier against a shipment",
	Args:  cobra.ExactArgs(1),
	RunE:  runShop,
}

func init() {
	quoteCmd.Flags().StringVarP(&carrierID, "carrier", "c", "", "carrier id to quote (required)")
	_ = quoteCmd.MarkFlagRequired("carrier")
	quoteCmd.Flags().BoolVar(&allowMissingZone, "allow-missing-zones", false,
		"quote carriers that have no zone configuration")
	shopCmd.Flags().BoolVar(&allowMissingZone, "allow-missing-zones", false,
		"quote carriers that have no zone configuration")
}

func runQuote(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	shipment, err := readShipment(args[0])
	if err != nil {
		return err
	}

	eng, _, cleanup, err := buildEngine(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	result := eng.Rate(ctx, engine.Request{CarrierID: carrierID, Shipment: shipment})
	return printJSON(result)
}

func runShop(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	shipment, err := readShipment(args[0])
	if err != nil {
		return err
	}

	eng, carrierIDs, cleanup, err := buildEngine(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if len(carrierIDs) == 0 {
		return fmt.Errorf("no carriers configured")
	}

	results := eng.Shop(ctx, shipment, carrierIDs)
	return printJSON(results)
}

// buildEngine wires the configured store backend into an engine and
// returns the known carrier ids for shopping.
func buildEngine(ctx context.Context) (*engine.Engine, []string, func(), error) {
	cfg := config.Get()
	opts := engine.Options{
		Defaults:               cfg.Rating,
		AllowMissingZoneConfig: allowMissingZone,
	}

	switch cfg.Store.Backend {
	case "mongo":
		mongoStore, err := store.NewMongo(ctx, cfg.Store.MongoURI, cfg.Store.MongoDatabase)
		if err != nil {
			return nil, nil, nil, err
		}
		ids, err := mongoStore.CarrierIDs(ctx)
		if err != nil {
			_ = mongoStore.Close(ctx)
			return nil, nil, nil, err
		}
		cleanup := func() { _ = mongoStore.Close(context.Background()) }
		return engine.New(mongoStore, opts), ids, cleanup, nil

	case "memory", "":
		memStore, err := store.LoadSnapshot(cfg.Store.SnapshotPath)
		if err != nil {
			return nil, nil, nil, err
		}
		return engine.New(memStore, opts), memStore.CarrierIDs(), func() {}, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func readShipment(path string) (types.Shipment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Shipment{}, fmt.Errorf("reading shipment file: %w", err)
	}

	var shipment types.Shipment
	if err := json.Unmarshal(data, &shipment); err != nil {
		return types.Shipment{}, fmt.Errorf("parsing shipment file: %w", err)
	}

	logging.Debug("shipment loaded")
	return shipment, nil
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
