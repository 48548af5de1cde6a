package main

import (
	"github.com/spf13/cobra"

	"github.com/Jalpan25/sweetshop-management-system/internal/search"
)

var (
	searchName     string
	searchCategory string
	searchMinPrice string
	searchMaxPrice string
	buyQuantity    int
	restockQty     int

	rootCmd = &cobra.Command{
		Use:           "sweetshop",
		Short:         "Terminal client for the sweet shop inventory API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	loginCmd = &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			return application.SignIn(cmd.Context())
		},
	}

	registerCmd = &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return application.SignUp(cmd.Context())
		},
	}

	logoutCmd = &cobra.Command{
		Use:   "logout",
		Short: "Drop the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return application.SignOut()
		},
	}

	dashboardCmd = &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"list", "ls"},
		Short:   "Show the sweets on offer with stock levels",
		RunE: func(cmd *cobra.Command, args []string) error {
			return application.Dashboard(cmd.Context())
		},
	}

	searchCmd = &cobra.Command{
		Use:   "search",
		Short: "Filter sweets by name, category or price range",
		RunE: func(cmd *cobra.Command, args []string) error {
			return application.Search(cmd.Context(), search.RawCriteria{
				Name:     searchName,
				Category: searchCategory,
				MinPrice: searchMinPrice,
				MaxPrice: searchMaxPrice,
			})
		},
	}

	buyCmd = &cobra.Command{
		Use:   "buy <sweet-id>",
		Short: "Purchase a sweet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return application.Buy(cmd.Context(), args[0], buyQuantity)
		},
	}

	restockCmd = &cobra.Command{
		Use:   "restock <sweet-id>",
		Short: "Restock a sweet (managers only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return application.Restock(cmd.Context(), args[0], restockQty)
		},
	}

	addCmd = &cobra.Command{
		Use:   "add",
		Short: "Add a new sweet to the catalog (managers only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return application.AddSweet(cmd.Context())
		},
	}

	updateCmd = &cobra.Command{
		Use:   "update <sweet-id>",
		Short: "Edit an existing sweet (managers only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return application.UpdateSweet(cmd.Context(), args[0])
		},
	}

	deleteCmd = &cobra.Command{
		Use:   "delete <sweet-id>",
		Short: "Remove a sweet from the catalog (managers only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return application.DeleteSweet(cmd.Context(), args[0])
		},
	}
)

func init() {
	searchCmd.Flags().StringVar(&searchName, "name", "", "substring match on the sweet name")
	searchCmd.Flags().StringVar(&searchCategory, "category", "", "substring match on the category")
	searchCmd.Flags().StringVar(&searchMinPrice, "min-price", "", "minimum price, inclusive")
	searchCmd.Flags().StringVar(&searchMaxPrice, "max-price", "", "maximum price, inclusive")

	buyCmd.Flags().IntVarP(&buyQuantity, "quantity", "q", 0, "quantity to purchase (prompted when omitted)")
	restockCmd.Flags().IntVarP(&restockQty, "quantity", "q", 0, "quantity to add (prompted when omitted)")

	rootCmd.AddCommand(
		loginCmd,
		registerCmd,
		logoutCmd,
		dashboardCmd,
		searchCmd,
		buyCmd,
		restockCmd,
		addCmd,
		updateCmd,
		deleteCmd,
	)
}
