package main

import (
	"io"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rotierp/internal/apiclient"
)

// execute runs a command tree the way Execute does from main, with output
// silenced. The app is left unwired: input validation must reject bad flags
// before any dependency is touched.
func execute(t *testing.T, cmd *cobra.Command, args ...string) error {
	t.Helper()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func requireValidation(t *testing.T, err error) *apiclient.ValidationError {
	t.Helper()
	var verr *apiclient.ValidationError
	require.ErrorAs(t, err, &verr)
	return verr
}

func TestProductCreateValidatesInput(t *testing.T) {
	err := execute(t, newProductsCmd(&app{}), "create", "--sku", "RT-9")
	verr := requireValidation(t, err)
	assert.Contains(t, verr.Message, "--price")

	err = execute(t, newProductsCmd(&app{}), "create",
		"--sku", "RT-9", "--name", "Tandoori Roti", "--price", "ten")
	verr = requireValidation(t, err)
	assert.Equal(t, "price", verr.Field)
}

func TestOrderCreateValidatesItems(t *testing.T) {
	err := execute(t, newOrdersCmd(&app{}), "create")
	verr := requireValidation(t, err)
	assert.Equal(t, "item", verr.Field)

	err = execute(t, newOrdersCmd(&app{}), "create", "--item", "abc")
	verr = requireValidation(t, err)
	assert.Contains(t, verr.Message, "productID:quantity")

	err = execute(t, newOrdersCmd(&app{}), "create", "--item", "abc:0")
	verr = requireValidation(t, err)
	assert.Contains(t, verr.Message, "quantity")
}

func TestRegisterValidatesRequiredFlags(t *testing.T) {
	err := execute(t, newRegisterCmd(&app{}), "--email", "x@roti.local")
	verr := requireValidation(t, err)
	assert.Contains(t, verr.Message, "--password")
}

func TestReportValidatesCustomWindow(t *testing.T) {
	err := execute(t, newReportCmd(&app{}), "sales", "--period", "custom")
	verr := requireValidation(t, err)
	assert.Equal(t, "period", verr.Field)

	err = execute(t, newReportCmd(&app{}), "expenses",
		"--period", "custom", "--from", "03-03-2026", "--to", "2026-03-04")
	verr = requireValidation(t, err)
	assert.Equal(t, "from", verr.Field)
}
