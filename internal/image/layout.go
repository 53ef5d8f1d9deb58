package imagepkg

// Card template. These are design parameters of the single supported
// template, not values derived from content.
const (
	CanvasWidth  = 1080
	CanvasHeight = 1920

	PolaroidWidth   = 800.0
	PolaroidHeight  = 900.0
	PolaroidTopFrac = 0.08
	PolaroidRadius  = 20.0

	PhotoWidth    = 720.0
	PhotoHeight   = 720.0
	PhotoTopInset = 40.0

	TitleGap        = 110.0 // polaroid bottom to title baseline
	NameGap         = 110.0 // title baseline to name baseline, plus half the name size
	MessageGap      = 100.0 // name baseline plus half the name size to first message line
	LineHeight      = 60.0
	TitleFontSize   = 80.0
	MessageFontSize = 48.0
	NameMaxWidth    = 0.9 * CanvasWidth
	MessageMaxWidth = 0.8 * CanvasWidth

	LogoMaxWidth  = 300.0
	LogoMaxHeight = 150.0
	LogoMargin    = 50.0
)

// Box is an axis-aligned rectangle in canvas pixels.
type Box struct {
	X, Y, W, H float64
}

func (b Box) Right() float64  { return b.X + b.W }
func (b Box) Bottom() float64 { return b.Y + b.H }

// CenterX returns the horizontal center of the box.
func (b Box) CenterX() float64 { return b.X + b.W/2 }

// CenterY returns the vertical center of the box.
func (b Box) CenterY() float64 { return b.Y + b.H/2 }

// Layout is the geometry of one card. Only the name baseline and the message
// start depend on content, through the chosen name font size.
type Layout struct {
	Canvas   Box
	Polaroid Box
	Photo    Box

	TitleY   float64
	NameY    float64
	MessageY float64
	NameSize float64
}

// NewLayout computes the card geometry for the given name font size.
func NewLayout(nameSize float64) Layout {
	canvas := Box{W: CanvasWidth, H: CanvasHeight}
	polaroid := Box{
		X: (canvas.W - PolaroidWidth) / 2,
		Y: canvas.H * PolaroidTopFrac,
		W: PolaroidWidth,
		H: PolaroidHeight,
	}
	photo := Box{
		X: polaroid.X + (PolaroidWidth-PhotoWidth)/2,
		Y: polaroid.Y + PhotoTopInset,
		W: PhotoWidth,
		H: PhotoHeight,
	}
	titleY := polaroid.Bottom() + TitleGap
	nameY := titleY + NameGap + nameSize/2
	return Layout{
		Canvas:   canvas,
		Polaroid: polaroid,
		Photo:    photo,
		TitleY:   titleY,
		NameY:    nameY,
		MessageY: nameY + nameSize/2 + MessageGap,
		NameSize: nameSize,
	}
}

// LogoBox anchors a logo of the given pixel size to the bottom-right corner.
// The logo is scaled down to fit LogoMaxWidth x LogoMaxHeight, never up.
func (l Layout) LogoBox(w, h int) Box {
	scale := min(LogoMaxWidth/float64(w), LogoMaxHeight/float64(h), 1)
	lw := float64(w) * scale
	lh := float64(h) * scale
	return Box{
		X: l.Canvas.W - lw - LogoMargin,
		Y: l.Canvas.H - lh - LogoMargin,
		W: lw,
		H: lh,
	}
}
