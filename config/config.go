package config

import "github.com/spf13/viper"

var (
	KeyCacheSuffix     = "cache.suffix"
	KeyServeAddress    = "serve.address"
	KeyAnalysisCommand = "analysis.command"
	KeyBoundsMargin    = "query.boundsMargin"
	KeyGPXExtensions   = "track.gpxExtensions"
	KeyNMEAExtensions  = "track.nmeaExtensions"
)

func CacheSuffix() string {
	if viper.IsSet(KeyCacheSuffix) {
		return viper.GetString(KeyCacheSuffix)
	}
	return DefaultCacheSuffix()
}

func ServeAddress() string {
	if viper.IsSet(KeyServeAddress) {
		return viper.GetString(KeyServeAddress)
	}
	return DefaultServeAddress()
}

func HasAnalysisCommand() bool {
	return viper.IsSet(KeyAnalysisCommand) && viper.GetString(KeyAnalysisCommand) != ""
}

func AnalysisCommand() string {
	return viper.GetString(KeyAnalysisCommand)
}

func BoundsMargin() float64 {
	if viper.IsSet(KeyBoundsMargin) {
		return viper.GetFloat64(KeyBoundsMargin)
	}
	return DefaultBoundsMargin()
}

func GPXExtensions() []string {
	if viper.IsSet(KeyGPXExtensions) {
		return viper.GetStringSlice(KeyGPXExtensions)
	}
	return []string{".gpx"}
}

func NMEAExtensions() []string {
	if viper.IsSet(KeyNMEAExtensions) {
		return viper.GetStringSlice(KeyNMEAExtensions)
	}
	return []string{".nmea", ".nma"}
}

func DefaultCacheSuffix() string {
	return ".mapdata"
}

func DefaultServeAddress() string {
	return ":8000"
}

// DefaultBoundsMargin is the margin, in degrees, added around a track's
// bounding rectangle before the query battery runs against it.
func DefaultBoundsMargin() float64 {
	return 0.01
}
