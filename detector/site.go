package detector

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Errors returned by site lookup.
var (
	ErrUnknownDetector = errors.New("detector: unknown detector name")
	ErrNoSiteInfo      = errors.New("detector: no site geometry for detector")
)

// Name identifies a cached interferometer site.
type Name int

const (
	LHO Name = iota
	LLO
	Virgo
	GEO600
	TAMA300
	CIT40
	Nautilus
	numSites
)

// String returns the two-character channel prefix of the site.
func (n Name) String() string {
	if n < 0 || n >= numSites {
		return fmt.Sprintf("Name(%d)", int(n))
	}
	return sites[n].Prefix
}

// Site is the geometry of one detector.
type Site struct {
	Name        Name
	Prefix      string
	Description string

	// Vertex is the corner-station position in Earth-fixed coordinates (m).
	Vertex r3.Vec
	// XArm and YArm are unit vectors along the arms. YArm is zero for a
	// resonant bar, whose axis is XArm.
	XArm, YArm r3.Vec
	// Response is the detector tensor: (XXᵀ - YYᵀ)/2 for an interferometer,
	// XXᵀ for a bar.
	Response *mat.SymDense
}

// Bar reports whether the site is a cylindrical resonant bar.
func (s *Site) Bar() bool {
	return s.YArm == (r3.Vec{})
}

var sites = [numSites]Site{
	LHO: newSite(LHO, "H1", "LHO_4k",
		r3.Vec{X: -2.16141492636e+06, Y: -3.83469517889e+06, Z: 4.60035022664e+06},
		r3.Vec{X: -0.22389266154, Y: 0.79983062746, Z: 0.55690487831},
		r3.Vec{X: -0.91397818574, Y: 0.02609403989, Z: -0.40492342125}),
	LLO: newSite(LLO, "L1", "LLO_4k",
		r3.Vec{X: -7.42760447238e+04, Y: -5.49628371971e+06, Z: 3.22425701744e+06},
		r3.Vec{X: -0.95457412153, Y: -0.14158077340, Z: -0.26218911324},
		r3.Vec{X: 0.29774156894, Y: -0.48791033647, Z: -0.82054461286}),
	Virgo: newSite(Virgo, "V1", "VIRGO",
		r3.Vec{X: 4.54637409900e+06, Y: 8.42989697626e+05, Z: 4.37857696241e+06},
		r3.Vec{X: -0.70045821479, Y: 0.20848948619, Z: 0.68256166277},
		r3.Vec{X: -0.05379255368, Y: -0.96908180549, Z: 0.24080451708}),
	GEO600: newSite(GEO600, "G1", "GEO_600",
		r3.Vec{X: 3.85630994926e+06, Y: 6.66598956317e+05, Z: 5.01964141725e+06},
		r3.Vec{X: -0.44530676905, Y: 0.86651354130, Z: 0.22551311312},
		r3.Vec{X: -0.62605756776, Y: -0.55218609524, Z: 0.55058372486}),
	TAMA300: newSite(TAMA300, "T1", "TAMA_300",
		r3.Vec{X: -3.94640899111e+06, Y: 3.36625902802e+06, Z: 3.69915069233e+06},
		r3.Vec{X: 0.64896940530, Y: 0.76081450498, Z: 0},
		r3.Vec{X: -0.44371376921, Y: 0.37848471479, Z: -0.81232223390}),
	CIT40: newSite(CIT40, "P1", "CIT_40",
		r3.Vec{X: -2.49064958347e+06, Y: -4.65869968211e+06, Z: 3.56206411403e+06},
		r3.Vec{X: -0.26480331633, Y: -0.49530818538, Z: -0.82737476706},
		r3.Vec{X: 0.88188012386, Y: -0.47147369718, Z: 0}),
	Nautilus: newBarSite(Nautilus, "N1", "Nautilus", 12.67, 41.82, 300, 44),
}

func newSite(name Name, prefix, desc string, vertex, xArm, yArm r3.Vec) Site {
	x := []float64{xArm.X, xArm.Y, xArm.Z}
	y := []float64{yArm.X, yArm.Y, yArm.Z}

	d := mat.NewSymDense(3, nil)
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			d.SetSym(i, j, 0.5*(x[i]*x[j]-y[i]*y[j]))
		}
	}

	return Site{
		Name:        name,
		Prefix:      prefix,
		Description: desc,
		Vertex:      vertex,
		XArm:        xArm,
		YArm:        yArm,
		Response:    d,
	}
}

// WGS-84 reference ellipsoid.
const (
	earthSemiMajor  = 6378137.0
	earthFlattening = 1 / 298.257223563
)

// newBarSite builds a cylindrical bar from its geodetic position (degrees,
// metres above the ellipsoid) and the azimuth of its axis, measured from
// North towards East. The axis is horizontal.
func newBarSite(name Name, prefix, desc string, lonDeg, latDeg, elevation, azimuthDeg float64) Site {
	lon := lonDeg * math.Pi / 180
	lat := latDeg * math.Pi / 180
	az := azimuthDeg * math.Pi / 180

	sinLat, cosLat := math.Sincos(lat)
	sinLon, cosLon := math.Sincos(lon)

	e2 := earthFlattening * (2 - earthFlattening)
	n := earthSemiMajor / math.Sqrt(1-e2*sinLat*sinLat)
	vertex := r3.Vec{
		X: (n + elevation) * cosLat * cosLon,
		Y: (n + elevation) * cosLat * sinLon,
		Z: (n*(1-e2) + elevation) * sinLat,
	}

	east := r3.Vec{X: -sinLon, Y: cosLon}
	north := r3.Vec{X: -sinLat * cosLon, Y: -sinLat * sinLon, Z: cosLat}
	axis := r3.Add(r3.Scale(math.Cos(az), north), r3.Scale(math.Sin(az), east))

	x := []float64{axis.X, axis.Y, axis.Z}
	d := mat.NewSymDense(3, nil)
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			d.SetSym(i, j, x[i]*x[j])
		}
	}

	return Site{
		Name:        name,
		Prefix:      prefix,
		Description: desc,
		Vertex:      vertex,
		XArm:        axis,
		Response:    d,
	}
}

// Get returns the cached site for n. The returned value must not be modified.
func Get(n Name) *Site {
	if n < 0 || n >= numSites {
		return nil
	}
	return &sites[n]
}

// Sites returns all cached sites in table order.
func Sites() []*Site {
	out := make([]*Site, numSites)
	for i := range out {
		out[i] = &sites[i]
	}
	return out
}

// ChannelPrefix turns a free-form detector name into its two-character
// channel prefix. "LHO" without an arm length is ambiguous and resolves to H1.
func ChannelPrefix(name string) (string, error) {
	has := func(subs ...string) bool {
		for _, s := range subs {
			if strings.Contains(name, s) {
				return true
			}
		}
		return false
	}

	switch {
	case has("ALLEGRO", "A1"):
		return "A1", nil
	case has("NIOBE", "B1"):
		return "B1", nil
	case has("EXPLORER", "E1"):
		return "E1", nil
	case has("GEO", "G1"):
		return "G1", nil
	case has("ACIGA", "K1"):
		return "K1", nil
	case has("LLO", "Livingston", "L1"):
		return "L1", nil
	case has("Nautilus", "N1"):
		return "N1", nil
	case has("AURIGA", "O1"):
		return "O1", nil
	case has("CIT_40", "Caltech-40", "P1"):
		return "P1", nil
	case has("TAMA", "T1"):
		return "T1", nil
	case has("Virgo_CITF", "V2"):
		return "V2", nil
	case has("Virgo", "VIRGO", "V1"):
		return "V1", nil
	case has("LHO_2k", "H2"):
		return "H2", nil
	case has("LHO", "Hanford", "H1"):
		return "H1", nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownDetector, name)
}

// Lookup resolves a free-form detector name to its cached site. Both
// Hanford interferometers share the H1 geometry and both Virgo prefixes the
// V1 geometry. Bars other than Nautilus have no site information.
func Lookup(name string) (*Site, error) {
	prefix, err := ChannelPrefix(name)
	if err != nil {
		return nil, err
	}

	switch prefix[0] {
	case 'H':
		return &sites[LHO], nil
	case 'L':
		return &sites[LLO], nil
	case 'V':
		return &sites[Virgo], nil
	case 'G':
		return &sites[GEO600], nil
	case 'T':
		return &sites[TAMA300], nil
	case 'P':
		return &sites[CIT40], nil
	case 'N':
		return &sites[Nautilus], nil
	}

	return nil, fmt.Errorf("%w: %s", ErrNoSiteInfo, prefix)
}
