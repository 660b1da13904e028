package tui

import (
	"bytes"
	"testing"

	"github.com/aretw0/quill/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "1.2.3")
	assert.Contains(t, buf.String(), "v1.2.3")
}

func TestIntro(t *testing.T) {
	md := Intro("Order", []string{"!c - cancel", "!u - undo"})
	assert.Contains(t, md, "`Order`")
	assert.Contains(t, md, "!c - cancel\n!u - undo\n")

	out, err := NewRenderer()(md)
	require.NoError(t, err)
	assert.Contains(t, out, "Order")
}

func TestReportStyle(t *testing.T) {
	style := ReportStyle()
	assert.Contains(t, style(domain.BadResponse, "nope"), "nope")
	assert.Contains(t, style(domain.Help, "help"), "help")
}
