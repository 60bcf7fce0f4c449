package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/grocerylist/backend/config"
	"github.com/grocerylist/backend/internal/domain"
	httpDelivery "github.com/grocerylist/backend/internal/delivery/http"
	"github.com/grocerylist/backend/internal/infrastructure/catalog"
	"github.com/grocerylist/backend/internal/infrastructure/session"
	"github.com/grocerylist/backend/internal/usecase"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const version = "1.0.0"

var (
	logger  *zap.Logger
	verbose bool

	catalogPath string
	filterText  string
	inStockOnly bool
	category    string
)

var rootCmd = &cobra.Command{
	Use:   "grocery",
	Short: "Grocery list server with a filterable catalog and a shopping cart",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if logger != nil {
			return nil
		}
		zapConfig := zap.NewProductionConfig()
		if verbose {
			zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapConfig.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the filtered catalog table",
	RunE: func(cmd *cobra.Command, args []string) error {
		products, err := loadCatalog()
		if err != nil {
			return err
		}
		criteria := domain.FilterCriteria{
			Text:        filterText,
			InStockOnly: inStockOnly,
			Category:    category,
		}.Normalize()
		return printRows(cmd.OutOrStdout(), usecase.ComputeRows(products, criteria))
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Print the category selection options",
	RunE: func(cmd *cobra.Command, args []string) error {
		products, err := loadCatalog()
		if err != nil {
			return err
		}
		for _, c := range usecase.Categories(products) {
			fmt.Fprintln(cmd.OutOrStdout(), c)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "catalog YAML file (default: built-in reference catalog)")

	catalogCmd.Flags().StringVarP(&filterText, "query", "q", "", "case-insensitive name filter")
	catalogCmd.Flags().BoolVar(&inStockOnly, "in-stock", false, "only show products in stock")
	catalogCmd.Flags().StringVarP(&category, "category", "c", domain.AllCategories, "category to show")

	rootCmd.AddCommand(serveCmd, catalogCmd, categoriesCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// loadCatalog reads the catalog named by --catalog, or the built-in one
func loadCatalog() ([]domain.Product, error) {
	repo, err := catalog.Load(catalogPath)
	if err != nil {
		return nil, err
	}
	return repo.All(context.Background())
}

// printRows writes display rows as an aligned table
func printRows(w io.Writer, rows []domain.DisplayRow) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, row := range rows {
		if row.IsHeader() {
			fmt.Fprintf(tw, "[%s]\t\t\n", row.Category)
			continue
		}
		stock := ""
		if !row.Product.Stocked {
			stock = "out of stock"
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", row.Product.Name, row.Product.Price, stock)
	}
	return tw.Flush()
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if catalogPath != "" {
		cfg.Catalog.Path = catalogPath
	}

	logger.Info("starting grocery list backend",
		zap.String("version", version),
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port))

	// Initialize infrastructure dependencies
	catalogRepo, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	logger.Info("catalog loaded",
		zap.String("source", catalogSource(cfg.Catalog.Path)),
		zap.Int("products", catalogRepo.Len()))

	sessions := session.NewMemoryStore(cfg.Session.TTL, cfg.Session.CleanupInterval)
	defer sessions.Close()

	// Initialize usecase layer
	shop := usecase.NewShopService(
		catalogRepo,
		sessions,
		usecase.ShopServiceConfig{Currency: cfg.Catalog.Currency},
		logger.Named("shop"),
	)

	handler := httpDelivery.NewHandler(shop, logger.Named("http"))
	router := httpDelivery.SetupRouter(cfg, handler, logger.Named("http"))

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func catalogSource(path string) string {
	if path == "" {
		return "built-in"
	}
	return path
}
