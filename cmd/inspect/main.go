package main

import (
	"chat-room/internal"
	"chat-room/repositories"
	"context"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
)

type Config struct {
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	// INSPECT_PREFIX narrows the scan, e.g. "participant:" or "msg:"
	Prefix  string `envconfig:"INSPECT_PREFIX"`
	Colours bool   `envconfig:"INSPECT_COLOURS" default:"true"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "inspect: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return err
	}

	logger := logs.GetLoggerFromString("INFO")
	options, err := internal.BadgerOptions(context.Background(), config.DatabaseURL, logger)
	if err != nil {
		return err
	}
	if options.InMemory {
		return fmt.Errorf("nothing to inspect in an in-memory database")
	}

	// BypassLockGuard allows reading while the server holds the lock
	db, err := badger.Open(options.WithReadOnly(true).WithBypassLockGuard(true))
	if err != nil {
		return fmt.Errorf("error while opening Badger: %w", err)
	}
	defer func() {
		_ = db.Close()
	}()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Kind", "Time", "Name", "Detail"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	rows := 0
	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(config.Prefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			key := string(item.Key())
			err := item.Value(func(val []byte) error {
				summary, err := repositories.DescribeDocument(key, val)
				if err != nil {
					// broken documents are listed with their error
					summary.Detail = "Error: " + err.Error()
				}
				table.Append([]string{key, summary.Kind, summary.At, summary.Name, summary.Detail})
				rows++
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	header := fmt.Sprintf(" %s (%d documents) ", config.DatabaseURL, rows)
	if config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	fmt.Println(header)
	table.Render()
	return nil
}
