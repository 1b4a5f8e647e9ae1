package workout

import "fmt"

// prescription is the dose of a station at one fitness level. Exactly one of
// the fields may be empty; values are copied into workouts verbatim and never
// scaled at composition time.
type prescription struct {
	Distance string
	Weight   string
	Reps     string
}

// stationOrder is the canonical race order of the eight stations. Station
// orders in composed workouts are always drawn from this sequence, so a
// workout with excluded stations keeps gaps in its order numbers.
var stationOrder = []StationName{
	StationSkiErg,
	StationSledPush,
	StationSledPull,
	StationBurpeeBroadJump,
	StationRowing,
	StationFarmersCarry,
	StationSandbagLunges,
	StationWallBalls,
}

// catalog holds the full prescription table: three fitness levels times eight
// stations. Distances match the official race format at every level; weights
// and wall ball reps scale with the level.
var catalog = map[FitnessLevel]map[StationName]prescription{
	LevelBeginner: {
		StationSkiErg:          {Distance: "1000m"},
		StationSledPush:        {Distance: "50m", Weight: "50kg"},
		StationSledPull:        {Distance: "50m", Weight: "70kg"},
		StationBurpeeBroadJump: {Distance: "80m"},
		StationRowing:          {Distance: "1000m"},
		StationFarmersCarry:    {Distance: "200m", Weight: "2x16kg"},
		StationSandbagLunges:   {Distance: "100m", Weight: "20kg"},
		StationWallBalls:       {Reps: "100", Weight: "4kg"},
	},
	LevelIntermediate: {
		StationSkiErg:          {Distance: "1000m"},
		StationSledPush:        {Distance: "50m", Weight: "102kg"},
		StationSledPull:        {Distance: "50m", Weight: "78kg"},
		StationBurpeeBroadJump: {Distance: "80m"},
		StationRowing:          {Distance: "1000m"},
		StationFarmersCarry:    {Distance: "200m", Weight: "2x24kg"},
		StationSandbagLunges:   {Distance: "100m", Weight: "20kg"},
		StationWallBalls:       {Reps: "100", Weight: "6kg"},
	},
	LevelAdvanced: {
		StationSkiErg:          {Distance: "1000m"},
		StationSledPush:        {Distance: "50m", Weight: "152kg"},
		StationSledPull:        {Distance: "50m", Weight: "103kg"},
		StationBurpeeBroadJump: {Distance: "80m"},
		StationRowing:          {Distance: "1000m"},
		StationFarmersCarry:    {Distance: "200m", Weight: "2x32kg"},
		StationSandbagLunges:   {Distance: "100m", Weight: "30kg"},
		StationWallBalls:       {Reps: "100", Weight: "9kg"},
	},
}

// stationDescriptions holds a short markdown primer per station, rendered to
// HTML by the stations endpoint.
var stationDescriptions = map[StationName]string{
	StationSkiErg: "Full-body pull on the ski ergometer.\n\n" +
		"- Drive with the hips, not just the arms\n" +
		"- Aim for long, powerful strokes over a fast flail",
	StationSledPush: "Push a weighted sled down the track and back.\n\n" +
		"- Keep arms locked and a low body angle\n" +
		"- Short, driving steps beat long strides",
	StationSledPull: "Drag the sled towards you hand over hand.\n\n" +
		"- Stay low and use your legs against the rope\n" +
		"- Walk backwards in the box to keep tension",
	StationBurpeeBroadJump: "Chest-to-ground burpee followed by a broad jump, repeated for distance.\n\n" +
		"- Land the jump with soft knees\n" +
		"- Settle into a sustainable rhythm early",
	StationRowing: "Row on the ergometer.\n\n" +
		"- Sequence legs, back, then arms\n" +
		"- A damper around 5-6 suits most athletes",
	StationFarmersCarry: "Carry a kettlebell in each hand for distance.\n\n" +
		"- Grip is the limiter; chalk up\n" +
		"- Keep shoulders packed and walk fast",
	StationSandbagLunges: "Walking lunges with a sandbag across the shoulders.\n\n" +
		"- Rear knee touches the floor on every rep\n" +
		"- Keep the torso upright under the bag",
	StationWallBalls: "Squat and throw a medicine ball to the target for reps.\n\n" +
		"- Full-depth squat, hit the target every throw\n" +
		"- Break into planned sets before your legs decide for you",
}

// StationInfo is the public catalog entry for one station at one level.
type StationInfo struct {
	Name                StationName `json:"name"`
	Order               int         `json:"order"`
	Distance            string      `json:"distance,omitempty"`
	Weight              string      `json:"weight,omitempty"`
	Reps                string      `json:"reps,omitempty"`
	DescriptionMarkdown string      `json:"descriptionMarkdown"`
}

// Levels lists the supported fitness levels.
func Levels() []FitnessLevel {
	return []FitnessLevel{LevelBeginner, LevelIntermediate, LevelAdvanced}
}

// ValidLevel reports whether level names a catalog fitness level.
func ValidLevel(level FitnessLevel) bool {
	_, ok := catalog[level]
	return ok
}

// Catalog returns the station catalog for a fitness level in canonical order.
func Catalog(level FitnessLevel) ([]StationInfo, error) {
	prescriptions, ok := catalog[level]
	if !ok {
		return nil, fmt.Errorf("%w: unknown fitness level %q", ErrInvalidParams, level)
	}
	infos := make([]StationInfo, 0, len(stationOrder))
	for i, name := range stationOrder {
		p := prescriptions[name]
		infos = append(infos, StationInfo{
			Name:                name,
			Order:               i + 1,
			Distance:            p.Distance,
			Weight:              p.Weight,
			Reps:                p.Reps,
			DescriptionMarkdown: stationDescriptions[name],
		})
	}
	return infos, nil
}

// init asserts catalog completeness so a missing level/station pair fails at
// startup instead of producing workouts with silently absent stations.
func init() {
	for _, level := range Levels() {
		prescriptions, ok := catalog[level]
		if !ok {
			panic(fmt.Sprintf("station catalog missing fitness level %q", level))
		}
		for _, name := range stationOrder {
			p, ok := prescriptions[name]
			if !ok {
				panic(fmt.Sprintf("station catalog missing %q at level %q", name, level))
			}
			if p.Distance == "" && p.Reps == "" {
				panic(fmt.Sprintf("station catalog entry %q at level %q has neither distance nor reps", name, level))
			}
		}
		if len(prescriptions) != len(stationOrder) {
			panic(fmt.Sprintf("station catalog has extra entries at level %q", level))
		}
	}
}
