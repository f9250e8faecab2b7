package prompt

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekaya-inc/ekaya-rekey/pkg/models"
)

func TestFillRenames_AsksForAllMissing(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("prod_db\nsales\r\ndev_db\ncrm"), &out)

	var pair models.RenamePair
	require.NoError(t, p.FillRenames(&pair))

	assert.Equal(t, models.RenamePair{
		OldDatabase: "prod_db",
		OldSchema:   "sales",
		NewDatabase: "dev_db",
		NewSchema:   "crm",
	}, pair)
	assert.Equal(t,
		"Enter the old database name: Enter the old schema name: Enter the new database name: Enter the new schema name: ",
		out.String())
}

func TestFillRenames_SkipsConfiguredValues(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("crm\n"), &out)

	pair := models.RenamePair{OldDatabase: "prod_db", OldSchema: "sales", NewDatabase: "dev_db"}
	require.NoError(t, p.FillRenames(&pair))

	assert.Equal(t, "crm", pair.NewSchema)
	assert.Equal(t, "Enter the new schema name: ", out.String())
}

func TestFillRenames_InputExhausted(t *testing.T) {
	p := New(strings.NewReader("prod_db\n"), io.Discard)

	var pair models.RenamePair
	err := p.FillRenames(&pair)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, "prod_db", pair.OldDatabase)
}

func TestAsk_KeepsInnerWhitespace(t *testing.T) {
	p := New(strings.NewReader("  my db  \n"), io.Discard)

	answer, err := p.Ask("? ")
	require.NoError(t, err)
	assert.Equal(t, "  my db  ", answer)
}
