package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cartdomain "storefront_backend/internal/cart/domain"
	cartsvc "storefront_backend/internal/cart/service"
	"storefront_backend/internal/catalog/domain"
)

// NewCategoriesCommand creates the categories command.
func NewCategoriesCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List catalog categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := opts.catalog().Categories(cmd.Context())
			if err != nil {
				return commandError(err)
			}
			return opts.printer().Success(categoriesView{Categories: categories})
		},
	}
}

// NewProductsCommand creates the products command.
func NewProductsCommand(opts *RootOptions) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "products",
		Short: "List products, optionally for one category",
		Example: `  shop products
  shop products --category electronics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			category = domain.NormalizeCategory(category)
			products, err := opts.catalog().Products(cmd.Context(), category)
			if err != nil {
				return commandError(err)
			}
			return opts.printer().Success(newProductsView(category, products))
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", domain.AllCategories, "category filter")
	return cmd
}

// NewCartCommand creates the cart command.
func NewCartCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "cart",
		Short: "Show the session cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withStore(cmd, func(ctx context.Context, store *cartsvc.Store) (interface{}, error) {
				return newCartView(store.State()), nil
			})
		},
	}
}

// NewAddCommand creates the add command.
func NewAddCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add one unit of a catalog product",
		Args:  exactProductID,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProductID(args[0])
			if err != nil {
				return err
			}
			return opts.withStore(cmd, func(ctx context.Context, store *cartsvc.Store) (interface{}, error) {
				product, err := opts.productReader().FindProduct(ctx, id)
				if err != nil {
					return nil, err
				}
				return newCartView(store.AddToCart(ctx, product)), nil
			})
		},
	}
}

// NewRemoveCommand creates the remove command.
func NewRemoveCommand(opts *RootOptions) *cobra.Command {
	return lineCommand(opts, "remove <product-id>", "Remove a product from the cart", (*cartsvc.Store).RemoveFromCart)
}

// NewIncrementCommand creates the inc command.
func NewIncrementCommand(opts *RootOptions) *cobra.Command {
	return lineCommand(opts, "inc <product-id>", "Add one unit to a cart line", (*cartsvc.Store).IncrementQuantity)
}

// NewDecrementCommand creates the dec command.
func NewDecrementCommand(opts *RootOptions) *cobra.Command {
	return lineCommand(opts, "dec <product-id>", "Remove one unit from a cart line", (*cartsvc.Store).DecrementQuantity)
}

// NewClearCommand creates the clear command.
func NewClearCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the session cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withStore(cmd, func(ctx context.Context, store *cartsvc.Store) (interface{}, error) {
				return newCartView(store.ClearCart(ctx)), nil
			})
		},
	}
}

// NewCheckoutCommand creates the checkout command.
func NewCheckoutCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "checkout",
		Short: "Place the cart as an order and empty it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withStore(cmd, func(ctx context.Context, store *cartsvc.Store) (interface{}, error) {
				receipt, err := store.Checkout(ctx)
				if err != nil {
					return nil, err
				}
				return newReceiptView(receipt), nil
			})
		},
	}
}

type lineOp func(*cartsvc.Store, context.Context, int64) cartdomain.State

func lineCommand(opts *RootOptions, use, short string, op lineOp) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  exactProductID,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProductID(args[0])
			if err != nil {
				return err
			}
			return opts.withStore(cmd, func(ctx context.Context, store *cartsvc.Store) (interface{}, error) {
				return newCartView(op(store, ctx, id)), nil
			})
		},
	}
}

func exactProductID(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return NewExitError(ExitCommandError, fmt.Sprintf("%s expects exactly one product id", cmd.Name()))
	}
	return nil
}

func parseProductID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, NewExitError(ExitCommandError, fmt.Sprintf("invalid product id %q", raw))
	}
	return id, nil
}
