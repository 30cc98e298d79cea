package slugcodec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceToSlug(t *testing.T) {
	tests := []struct {
		name string
		vnd  int64
		want string
	}{
		{"millions", 500_000_000, "500-trieu"},
		{"one decimal billion", 13_500_000_000, "13-5-ty"},
		{"whole billion", 2_000_000_000, "2-ty"},
		{"billion rounded to one decimal", 13_540_000_000, "13-5-ty"},
		{"billion rounded up to whole", 13_960_000_000, "14-ty"},
		{"just below billion promoted", 999_600_000, "1-ty"},
		{"sub-million rounds to one", 400_000, "1-trieu"},
		{"rental price", 7_000_000, "7-trieu"},
		{"zero is unset", 0, ""},
		{"negative is unset", -5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PriceToSlug(tt.vnd))
		})
	}
}

func TestSlugToPrice(t *testing.T) {
	tests := []struct {
		slug string
		want int64
	}{
		{"500-trieu", 500_000_000},
		{"13-5-ty", 13_500_000_000},
		{"2-ty", 2_000_000_000},
		{"0-5-ty", 500_000_000},
		{"13-5-6-ty", 0},
		{"13-55-ty", 0},
		{"ty", 0},
		{"-ty", 0},
		{"abc-trieu", 0},
		{"5.5-ty", 0},
		{"", 0},
		{"99999999999999999999-trieu", 0},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			assert.Equal(t, tt.want, SlugToPrice(tt.slug))
		})
	}
}

func TestPriceRoundTrip(t *testing.T) {
	for _, vnd := range []int64{
		1_000_000, 500_000_000, 999_000_000,
		1_000_000_000, 1_500_000_000, 13_500_000_000, 50_000_000_000,
	} {
		assert.Equal(t, vnd, SlugToPrice(PriceToSlug(vnd)), "round trip for %d", vnd)
	}
}

func TestAreaCodec(t *testing.T) {
	assert.Equal(t, "80m", AreaToSlug(80))
	assert.Equal(t, "", AreaToSlug(0))
	assert.Equal(t, 80, SlugToArea("80m"))
	assert.Equal(t, 0, SlugToArea("80"))
	assert.Equal(t, 0, SlugToArea("m"))
	assert.Equal(t, 0, SlugToArea("8o m"))
	assert.Equal(t, 120, SlugToArea(AreaToSlug(120)))
}

func TestProjectSlug(t *testing.T) {
	assert.Equal(t, "dao-kim-cuong", ProjectSlug("Đảo Kim Cương"))
	assert.Equal(t, "vinhomes-grand-park", ProjectSlug("  Vinhomes   Grand Park "))
	assert.Equal(t, "the-sun-avenue-q-2", ProjectSlug("The Sun Avenue (Q.2)"))
	assert.Equal(t, "", ProjectSlug("!!!"))
}
