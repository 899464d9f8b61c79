package body

// DefaultSun is the built-in central star.
var DefaultSun = Star{
	Name:   "SUN",
	Radius: 35,
	ColorA: "#ffd700",
	ColorB: "#ff8800",
}

// Default returns the built-in catalogue. Each call returns fresh slices.
func Default() Registry {
	return Registry{
		Sun: DefaultSun,
		Bodies: []Descriptor{
			{
				Name: "MERCURY", Radius: 3, Distance: 70, Speed: 0.04,
				Class: Rocky, ColorA: "#aaaaaa", ColorB: "#555555",
				Description: "Fastest planet, sun-scorched surface.",
			},
			{
				Name: "VENUS", Radius: 5.5, Distance: 100, Speed: 0.015,
				Class: Rocky, ColorA: "#eecfa1", ColorB: "#dbb47e",
				Description: "Hottest planet due to greenhouse gases.",
			},
			{
				Name: "EARTH", Radius: 6, Distance: 140, Speed: 0.01,
				Class: WaterWorld, ColorA: "#0000ff", ColorB: "#00ff00",
				Description: "Our home. The only known life.",
				Satellites:  []Satellite{{Name: "Moon", Radius: 1.5, Distance: 12}},
			},
			{
				Name: "MARS", Radius: 4.5, Distance: 180, Speed: 0.008,
				Class: Rocky, ColorA: "#c1440e", ColorB: "#8a2be2",
				Description: "The Red Planet. Possible ancient water.",
				Satellites: []Satellite{
					{Name: "Phobos", Radius: 0.5, Distance: 6},
					{Name: "Deimos", Radius: 0.3, Distance: 8},
				},
			},
			{
				Name: "JUPITER", Radius: 18, Distance: 300, Speed: 0.004,
				Class: Gas, ColorA: "#d9cdb1", ColorB: "#a97c50",
				Description: "King of planets. Massive gas giant.",
				Satellites: []Satellite{
					{Name: "Io", Radius: 1.8, Distance: 25},
					{Name: "Europa", Radius: 1.6, Distance: 28},
					{Name: "Ganymede", Radius: 2.2, Distance: 34},
					{Name: "Callisto", Radius: 2, Distance: 40},
				},
			},
			{
				Name: "SATURN", Radius: 15, Distance: 420, Speed: 0.003,
				Class: Gas, ColorA: "#f4d03f", ColorB: "#c9a128",
				Description: "Known for its majestic ring system.",
				Ring:        true,
				Satellites:  []Satellite{{Name: "Titan", Radius: 2, Distance: 30}},
			},
			{
				Name: "URANUS", Radius: 10, Distance: 520, Speed: 0.002,
				Class: Gas, ColorA: "#73acac", ColorB: "#ffffff",
				Description: "Ice giant that spins on its side.",
				Satellites:  []Satellite{{Name: "Titania", Radius: 1, Distance: 18}},
			},
			{
				Name: "NEPTUNE", Radius: 9.5, Distance: 600, Speed: 0.0018,
				Class: Gas, ColorA: "#3333ff", ColorB: "#111199",
				Description: "Windiest planet. Dark blue world.",
				Satellites:  []Satellite{{Name: "Triton", Radius: 1.2, Distance: 20}},
			},
			{
				Name: "CERES", Radius: 1.5, Distance: 240, Speed: 0.007,
				Class: Rocky, ColorA: "#888888", ColorB: "#444444",
				Description: "Queen of the asteroid belt.",
			},
			{
				Name: "PLUTO", Radius: 2.5, Distance: 700, Speed: 0.001,
				Class: Rocky, ColorA: "#ddccbb", ColorB: "#998877",
				Description: "Dwarf planet with a heart-shaped glacier.",
				Satellites:  []Satellite{{Name: "Charon", Radius: 1.2, Distance: 8}},
			},
			{
				Name: "ERIS", Radius: 2.6, Distance: 800, Speed: 0.0008,
				Class: Rocky, ColorA: "#ffffff", ColorB: "#eeeeee",
				Description: "More massive than Pluto.",
			},
			{
				Name: "MAKEMAKE", Radius: 2.4, Distance: 900, Speed: 0.0007,
				Class: Rocky, ColorA: "#aa5555", ColorB: "#552222",
				Description: "Reddish dwarf planet.",
			},
		},
	}
}
