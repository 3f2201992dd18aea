package text

type Option func(*Converter)

func WithFont(family string, size float64) Option {
	return func(c *Converter) {
		c.font = family
		c.size = size
	}
}
