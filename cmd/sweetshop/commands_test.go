package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSearchFlags(t *testing.T) {
	for _, name := range []string{"name", "category", "min-price", "max-price"} {
		require.NotNil(t, searchCmd.Flags().Lookup(name), "flag --%s must be registered", name)
	}

	// Имя и категория фильтруются сервером по подстроке, подсказки
	// не должны обещать точное совпадение
	require.Contains(t, searchCmd.Flags().Lookup("name").Usage, "substring")
	require.Contains(t, searchCmd.Flags().Lookup("category").Usage, "substring")
}

func TestQuantityFlags(t *testing.T) {
	for _, cmd := range []string{"buy", "restock"} {
		sub, _, err := rootCmd.Find([]string{cmd})
		require.NoError(t, err)
		require.NotNil(t, sub.Flags().Lookup("quantity"), "%s must take --quantity", cmd)
	}
}
