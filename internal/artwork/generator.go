// Package artwork renders a spirit's attribute vector as a deterministic SVG.
// Identical (vector, label) inputs always produce byte-identical output, which
// makes renders safe to cache and reproducible across services.
package artwork

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"strings"

	"github.com/soulscape/evolution-engine/internal/domain"
)

const (
	canvasSize = 600
	center     = canvasSize / 2
)

// Seed derives the 32-bit generator seed from the exact serialized vector and
// the label. FNV-1a is order sensitive, so any change to the serialization or
// label yields a different sequence.
func Seed(v domain.AttributeVector, label string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(v.String()))
	_, _ = h.Write([]byte(label))
	return h.Sum32()
}

// Render produces the SVG document for the given vector and label. The render
// never consults the clock or any unseeded randomness.
func Render(v domain.AttributeVector, label string) []byte {
	rng := rand.New(rand.NewSource(int64(Seed(v, label))))

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		canvasSize, canvasSize, canvasSize, canvasSize)
	b.WriteString(`<rect width="100%" height="100%" fill="#000000"/>`)

	hue := dominantHue(v)
	baseRadius := 80.0 + float64(v.Influence)*0.8

	writeAura(&b, hue, baseRadius)
	writeBody(&b, rng, v, hue, baseRadius)
	writeConnectivityChords(&b, v, hue, baseRadius)
	writeChaosParticles(&b, rng, v, baseRadius)
	writeInfluenceRings(&b, v, hue, baseRadius)
	writeCore(&b, hue, baseRadius)

	b.WriteString(`</svg>`)
	return []byte(b.String())
}

// dominantHue maps the vector to a hue band: aggression sits in the red zone,
// chaos in purple-pink, serenity in cyan-blue.
func dominantHue(v domain.AttributeVector) float64 {
	switch {
	case v.Aggression > 50:
		return float64(v.Aggression) / 100 * 30
	case v.Chaos > 40:
		return 240 + float64(v.Chaos)/100*60
	default:
		return 180 + float64(v.Serenity)/100*60
	}
}

func writeAura(b *strings.Builder, hue, baseRadius float64) {
	fmt.Fprintf(b, `<defs><radialGradient id="aura"><stop offset="0%%" stop-color="hsl(%.1f,80%%,60%%)" stop-opacity="0.4"/><stop offset="50%%" stop-color="hsl(%.1f,70%%,50%%)" stop-opacity="0.2"/><stop offset="100%%" stop-color="hsl(%.1f,70%%,50%%)" stop-opacity="0"/></radialGradient></defs>`,
		hue, hue, hue)
	fmt.Fprintf(b, `<circle cx="%d" cy="%d" r="%.2f" fill="url(#aura)"/>`,
		center, center, baseRadius*1.5)
}

// writeBody draws the organic blob: one point per segment, radius jittered by
// the seeded sequence, with spikes once aggression crosses its threshold.
func writeBody(b *strings.Builder, rng *rand.Rand, v domain.AttributeVector, hue, baseRadius float64) {
	numPoints := 8 + v.Connectivity/10

	var path strings.Builder
	for i := 0; i <= numPoints; i++ {
		angle := float64(i) / float64(numPoints) * 2 * math.Pi

		jitter := (rng.Float64()*2 - 1) * 15
		chaosOffset := (rng.Float64()*2 - 1) * float64(v.Chaos) / 5
		var spike float64
		if v.Aggression > 50 {
			spike = math.Abs(math.Sin(angle*3)) * 20
		}

		radius := baseRadius + jitter + chaosOffset + spike
		x := float64(center) + math.Cos(angle)*radius
		y := float64(center) + math.Sin(angle)*radius

		if i == 0 {
			fmt.Fprintf(&path, "M%.2f,%.2f", x, y)
		} else {
			fmt.Fprintf(&path, " L%.2f,%.2f", x, y)
		}
	}
	path.WriteString(" Z")

	stroke := ""
	if v.Aggression > 40 {
		stroke = fmt.Sprintf(` stroke="hsl(%.1f,100%%,60%%)" stroke-width="3"`, float64(v.Aggression)/100*30)
	}
	fmt.Fprintf(b, `<path d="%s" fill="hsl(%.1f,90%%,60%%)" fill-opacity="0.85"%s/>`,
		path.String(), hue, stroke)
}

func writeConnectivityChords(b *strings.Builder, v domain.AttributeVector, hue, baseRadius float64) {
	if v.Connectivity <= 20 {
		return
	}

	n := v.Connectivity / 10
	r := baseRadius * 0.7
	opacity := float64(v.Connectivity) / 200
	for i := 0; i < n; i++ {
		a1 := float64(i) / float64(n) * 2 * math.Pi
		a2 := float64(i+1) / float64(n) * 2 * math.Pi
		fmt.Fprintf(b, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="hsl(%.1f,70%%,60%%)" stroke-opacity="%.3f"/>`,
			float64(center)+math.Cos(a1)*r, float64(center)+math.Sin(a1)*r,
			float64(center)+math.Cos(a2)*r, float64(center)+math.Sin(a2)*r,
			hue, opacity)
	}
}

func writeChaosParticles(b *strings.Builder, rng *rand.Rand, v domain.AttributeVector, baseRadius float64) {
	if v.Chaos <= 30 {
		return
	}

	chaosHue := 240 + float64(v.Chaos)/100*60
	n := v.Chaos / 5
	for i := 0; i < n; i++ {
		angle := float64(i) / float64(n) * 2 * math.Pi
		distance := baseRadius + (rng.Float64()*2-1)*40
		fmt.Fprintf(b, `<circle cx="%.2f" cy="%.2f" r="3" fill="hsl(%.1f,90%%,70%%)" fill-opacity="%.3f"/>`,
			float64(center)+math.Cos(angle)*distance,
			float64(center)+math.Sin(angle)*distance,
			chaosHue, 0.25+rng.Float64()*0.5)
	}
}

func writeInfluenceRings(b *strings.Builder, v domain.AttributeVector, hue, baseRadius float64) {
	if v.Influence <= 30 {
		return
	}

	for i := 1; i <= v.Influence/20; i++ {
		fmt.Fprintf(b, `<circle cx="%d" cy="%d" r="%.2f" fill="none" stroke="hsl(%.1f,80%%,60%%)" stroke-width="2" stroke-opacity="%.3f"/>`,
			center, center, baseRadius+float64(i)*30, hue, 0.3/float64(i))
	}
}

func writeCore(b *strings.Builder, hue, baseRadius float64) {
	cy := float64(center) - baseRadius*0.3
	fmt.Fprintf(b, `<circle cx="%d" cy="%.2f" r="8" fill="#ffffff" fill-opacity="0.9"/>`, center, cy)
	fmt.Fprintf(b, `<circle cx="%d" cy="%.2f" r="5" fill="hsl(%.1f,100%%,30%%)" fill-opacity="0.8"/>`, center, cy, hue)
}
