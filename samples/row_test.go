package samples

import (
	"testing"

	"github.com/gmlewis/filament-swatches/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowSkip(t *testing.T) {
	tests := []struct {
		name   string
		fields []string
		want   bool
	}{
		{name: "no fields", want: true},
		{name: "empty first field", fields: []string{"", "PLA", "Red", "210", "60"}, want: true},
		{name: "whitespace first field", fields: []string{"   ", "PLA"}, want: true},
		{name: "comment", fields: []string{"#comment"}, want: true},
		{name: "comment with columns", fields: []string{"# Prusa", "PLA", "Red", "210", "60"}, want: true},
		{name: "normal", fields: []string{"Prusa", "PLA", "Red", "210", "60"}},
		{name: "short row is not skipped", fields: []string{"Prusa", "PLA"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewRow(1, tt.fields...).Skip())
		})
	}
}

func TestRowRequired(t *testing.T) {
	row := NewRow(4, "Prusa", "PLA", "", "210")

	v, err := row.Required(Brand)
	require.NoError(t, err)
	assert.Equal(t, "Prusa", v)

	_, err = row.Required(Color)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.KindMalformedRow))
	reason, _ := errs.Meta(err, errs.MetaKeyReason)
	assert.Equal(t, "empty", reason)

	_, err = row.Required(TempBed)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.KindMalformedRow))
	field, _ := errs.Meta(err, errs.MetaKeyField)
	assert.Equal(t, "TEMP_BED", field)
	line, _ := errs.Meta(err, errs.MetaKeyLine)
	assert.Equal(t, "4", line)
}

func TestRowTrimsFields(t *testing.T) {
	row := NewRow(1, "Prusa", " PLA", " Red ", "210 ", " 60", " 8 ")

	v, err := row.Required(Type)
	require.NoError(t, err)
	assert.Equal(t, "PLA", v)
	v, err = row.Required(Color)
	require.NoError(t, err)
	assert.Equal(t, "Red", v)
	size, ok := row.Optional(BrandSize)
	assert.True(t, ok)
	assert.Equal(t, "8", size)
	assert.Equal(t, "Prusa_PLA_Red_210_60_8", row.Name())
}

func TestRowOptional(t *testing.T) {
	tests := []struct {
		name   string
		fields []string
		field  Field
		want   string
		wantOK bool
	}{
		{name: "absent", fields: []string{"a", "b", "c", "d", "e"}, field: BrandSize},
		{name: "empty", fields: []string{"a", "b", "c", "d", "e", ""}, field: BrandSize},
		{name: "blank", fields: []string{"a", "b", "c", "d", "e", "  "}, field: BrandSize},
		{name: "present", fields: []string{"a", "b", "c", "d", "e", "", "", "7"}, field: ColorSize, want: "7", wantOK: true},
		{name: "trimmed", fields: []string{"a", "b", "c", "d", "e", "", " 5 "}, field: TypeSize, want: "5", wantOK: true},
		{name: "out of range", fields: []string{"a"}, field: Field(42)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NewRow(1, tt.fields...).Optional(tt.field)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRowName(t *testing.T) {
	assert.Equal(t, "Prusa_PLA_Red_210_60", NewRow(1, "Prusa", "PLA", "Red", "210", "60").Name())
	assert.Equal(t, "Prusa_PLA_Red_210_60_8__", NewRow(1, "Prusa", "PLA", "Red", "210", "60", "8", "", "").Name())
}

func TestFieldString(t *testing.T) {
	assert.Equal(t, "BRAND", Brand.String())
	assert.Equal(t, "TEMP_HOTEND", TempHotend.String())
	assert.Equal(t, "COLOR_SIZE", ColorSize.String())
	assert.Equal(t, "UNKNOWN", Field(-1).String())
	assert.True(t, TempBed.Required())
	assert.False(t, BrandSize.Required())
}
