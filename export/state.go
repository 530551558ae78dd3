package export

import "github.com/rs/zerolog"

// exportPhase tracks where an export run is. The only transitions into error
// are from capturing and paginating; image failures never reach it.
type exportPhase int

const (
	phaseIdle exportPhase = iota
	phasePopulating
	phaseAwaitingHero
	phaseAwaitingGallery
	phaseCapturing
	phasePaginating
	phaseDone
	phaseError
)

func (p exportPhase) String() string {
	switch p {
	case phaseIdle:
		return "idle"
	case phasePopulating:
		return "populating"
	case phaseAwaitingHero:
		return "awaiting_hero_image"
	case phaseAwaitingGallery:
		return "awaiting_gallery_images"
	case phaseCapturing:
		return "capturing"
	case phasePaginating:
		return "paginating"
	case phaseDone:
		return "done"
	case phaseError:
		return "error"
	}
	return "unknown"
}

// exportState is created per export and discarded with it.
type exportState struct {
	phase  exportPhase
	logger zerolog.Logger
}

func newExportState(logger zerolog.Logger) *exportState {
	return &exportState{phase: phaseIdle, logger: logger}
}

func (s *exportState) enter(p exportPhase) {
	s.phase = p
	s.logger.Debug().Str("phase", p.String()).Msg("export phase")
}

func (s *exportState) galleryProgress(index int, loaded bool) {
	s.logger.Debug().
		Str("phase", s.phase.String()).
		Int("image_index", index).
		Bool("loaded", loaded).
		Msg("gallery image settled")
}

func (s *exportState) fail(err error) {
	from := s.phase
	s.phase = phaseError
	s.logger.Error().Str("failed_phase", from.String()).Err(err).Msg("export failed")
}
