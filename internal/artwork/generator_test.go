package artwork_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soulscape/evolution-engine/internal/artwork"
	"github.com/soulscape/evolution-engine/internal/domain"
)

func TestSeedIsStable(t *testing.T) {
	v := domain.AttributeVector{Aggression: 40, Serenity: 55, Chaos: 20, Influence: 30, Connectivity: 15}

	assert.Equal(t, artwork.Seed(v, "7"), artwork.Seed(v, "7"))
	assert.NotEqual(t, artwork.Seed(v, "7"), artwork.Seed(v, "8"))

	shifted := v
	shifted.Chaos++
	assert.NotEqual(t, artwork.Seed(v, "7"), artwork.Seed(shifted, "7"))
}

func TestRenderIsDeterministic(t *testing.T) {
	v := domain.AttributeVector{Aggression: 70, Serenity: 10, Chaos: 60, Influence: 80, Connectivity: 65}

	first := artwork.Render(v, "42")
	second := artwork.Render(v, "42")

	assert.Equal(t, first, second)
}

func TestRenderVariesWithInput(t *testing.T) {
	v := domain.AttributeVector{Aggression: 10, Serenity: 60, Chaos: 10, Influence: 5, Connectivity: 5}

	base := artwork.Render(v, "1")
	otherLabel := artwork.Render(v, "2")

	shifted := v
	shifted.Aggression = 90
	otherVector := artwork.Render(shifted, "1")

	assert.NotEqual(t, base, otherLabel)
	assert.NotEqual(t, base, otherVector)
}

func TestRenderProducesWellFormedSVG(t *testing.T) {
	svg := string(artwork.Render(domain.AttributeVector{Serenity: 100}, "0"))

	assert.True(t, strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg"`))
	assert.True(t, strings.HasSuffix(svg, `</svg>`))
	assert.Contains(t, svg, `viewBox="0 0 600 600"`)
}
