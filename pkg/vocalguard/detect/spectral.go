package detect

import "github.com/karthikeya-ram/vocalguard/pkg/vocalguard/feature"

// SpectralArtifact flags the over-smooth spectro-temporal structure typical
// of vocoder output: frame-to-frame spectra that barely move, an unnaturally
// steady spectral envelope, and flat loudness dynamics.
type SpectralArtifact struct{}

func NewSpectralArtifact() *SpectralArtifact { return &SpectralArtifact{} }

func (d *SpectralArtifact) Name() string { return "spectral_artifact" }

func (d *SpectralArtifact) Score(vec *feature.Vector) (Result, error) {
	// Negative weights: values below the natural baseline push the score
	// toward synthetic.
	return scoreLinear(vec, []linearTerm{
		{feature: "spectral_flux_mean", cue: "spectral dynamics", weight: -1.0},
		{feature: "spectral_centroid_var", cue: "spectral texture", weight: -0.4},
		{feature: "rms_energy_var", cue: "loudness dynamics", weight: -0.4},
	})
}
