package coords

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecimalDegreesToUTM(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		zone     uint8
		band     byte
		easting  float64
		northing float64
	}{
		{"Wuppertal", 51.2, 7.5, 32, 'U', 395201.3104, 5673135.2412},
		{"Eiffel Tower", 48.8582, 2.2945, 31, 'U', 448251.795, 5411932.678},
		{"Sydney", -33.8568, 151.2153, 56, 'H', 334900.570, 6252288.753},
		{"Null Island", 0, 0, 31, 'N', 166021.443, 0},
		{"Empire State", 40.748817, -73.985428, 18, 'T', 585650.837, 4511369.003},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dd, err := NewDecimalDegrees(tt.lat, tt.lon)
			require.NoError(t, err)

			u, err := dd.ToUTM()
			require.NoError(t, err)

			assert.Equal(t, tt.zone, u.Zone)
			assert.Equal(t, string(tt.band), string(u.Band))
			assert.Equal(t, tt.lat >= 0, u.North)
			assert.InDelta(t, tt.easting, u.Easting, 0.01)
			assert.InDelta(t, tt.northing, u.Northing, 0.01)
		})
	}
}

func TestUTMToDecimalDegrees(t *testing.T) {
	u, err := NewUTM(32, 'U', 340000, 5710000)
	require.NoError(t, err)

	dd, err := u.ToDecimalDegrees()
	require.NoError(t, err)

	assert.InDelta(t, 51.51842959161008, dd.Lat, 1e-9)
	assert.InDelta(t, 6.693877485744095, dd.Lon, 1e-9)
}

func TestZoneExceptions(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		zone     uint8
	}{
		{"Bergen widened zone", 60.39, 5.32, 32},
		{"south of Norway rule", 55.9, 5.32, 31},
		{"east of Norway rule", 60.39, 12.1, 33},
		{"Svalbard 31", 78, 8.9, 31},
		{"Svalbard 33", 78, 15, 33},
		{"Svalbard 35", 78, 25, 35},
		{"Svalbard 37", 78, 40, 37},
		{"past Svalbard rule", 78, 42.5, 38},
		{"antimeridian east", 10, 180, 60},
		{"antimeridian west", 10, -180, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.zone, zoneFor(tt.lat, tt.lon))
		})
	}
}

func TestBandFor(t *testing.T) {
	tests := []struct {
		lat  float64
		band byte
	}{
		{-90, 'C'},
		{-80, 'C'},
		{-72.1, 'C'},
		{-72, 'D'},
		{-0.0001, 'M'},
		{0, 'N'},
		{51.2, 'U'},
		{71.99, 'W'},
		{72, 'X'},
		{84, 'X'},
		{90, 'X'},
	}

	for _, tt := range tests {
		assert.Equal(t, string(tt.band), string(bandFor(tt.lat)), "lat %v", tt.lat)
	}
}

func TestDecimalDegreesToDMS(t *testing.T) {
	dd, err := NewDecimalDegrees(48.8582, 2.2945)
	require.NoError(t, err)

	dms, err := dd.ToDMS()
	require.NoError(t, err)

	assert.Equal(t, uint8(48), dms.Lat.Degrees)
	assert.Equal(t, uint8(51), dms.Lat.Minutes)
	assert.InDelta(t, 29.52, dms.Lat.Seconds, 1e-6)
	assert.Equal(t, North, dms.Lat.Hemisphere)
	assert.Equal(t, uint16(2), dms.Lon.Degrees)
	assert.Equal(t, uint8(17), dms.Lon.Minutes)
	assert.InDelta(t, 40.2, dms.Lon.Seconds, 1e-6)
	assert.Equal(t, East, dms.Lon.Hemisphere)
	assert.Equal(t, `48°51'29.52"N 2°17'40.2"E`, dms.String())

	dd, err = NewDecimalDegrees(-33.5, -70.25)
	require.NoError(t, err)
	dms, err = dd.ToDMS()
	require.NoError(t, err)
	assert.Equal(t, `33°30'0"S 70°15'0"W`, dms.String())
}

func TestDecimalDegreesToMGRS(t *testing.T) {
	tests := []struct {
		name      string
		lat, lon  float64
		precision int
		want      string
	}{
		{"Eiffel Tower 1m", 48.8582, 2.2945, 5, "31UDQ4825111932"},
		{"Sydney 1m", -33.8568, 151.2153, 5, "56HLH3490052288"},
		{"Sydney 1km", -33.8568, 151.2153, 2, "56HLH3452"},
		{"Sydney square", -33.8568, 151.2153, 0, "56HLH"},
		{"Bergen", 60, 5, 5, "32VKM7697958157"},
		{"Svalbard", 78, 15, 2, "33XWG0058"},
		{"Null Island", 0, 0, 5, "31NAA6602100000"},
		{"southern limit", -80, 0, 5, "31CDM4186716915"},
		{"northern limit", 84, 0, 5, "31XDP6500529005"},
		{"Empire State", 40.748817, -73.985428, 5, "18TWL8565011369"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dd, err := NewDecimalDegrees(tt.lat, tt.lon)
			require.NoError(t, err)

			m, err := dd.ToMGRS(tt.precision)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.String())
		})
	}
}

func TestMGRSToDecimalDegrees(t *testing.T) {
	m, err := ParseMGRS("32ULC4000010000")
	require.NoError(t, err)

	u, err := m.utm()
	require.NoError(t, err)
	assert.InDelta(t, 340000, u.Easting, 1e-6)
	assert.InDelta(t, 5710000, u.Northing, 1e-6)

	dd, err := m.ToDecimalDegrees()
	require.NoError(t, err)
	assert.InDelta(t, 51.51842959161008, dd.Lat, 1e-9)
	assert.InDelta(t, 6.693877485744095, dd.Lon, 1e-9)

	m, err = ParseMGRS("56HLH3452")
	require.NoError(t, err)
	dd, err = m.ToDecimalDegrees()
	require.NoError(t, err)
	assert.InDelta(t, -33.859261703772354, dd.Lat, 1e-9)
	assert.InDelta(t, 151.20551468687532, dd.Lon, 1e-9)
}

func TestRoundTrips(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 5000; i++ {
		lat := rng.Float64()*164 - 80
		lon := rng.Float64()*360 - 180

		dd, err := NewDecimalDegrees(lat, lon)
		require.NoError(t, err)

		u, err := dd.ToUTM()
		require.NoError(t, err)
		back, err := u.ToDecimalDegrees()
		require.NoError(t, err)
		assert.InDelta(t, lat, back.Lat, 1e-3, "utm lat %v,%v", lat, lon)
		assert.InDelta(t, lon, back.Lon, 1e-3, "utm lon %v,%v", lat, lon)

		dms, err := dd.ToDMS()
		require.NoError(t, err)
		back, err = dms.ToDecimalDegrees()
		require.NoError(t, err)
		assert.InDelta(t, lat, back.Lat, 1e-9, "dms lat %v,%v", lat, lon)
		assert.InDelta(t, lon, back.Lon, 1e-9, "dms lon %v,%v", lat, lon)

		m, err := dd.ToMGRS(MaxPrecision)
		require.NoError(t, err)
		back, err = m.ToDecimalDegrees()
		require.NoError(t, err)
		assert.InDelta(t, lat, back.Lat, 1e-3, "mgrs lat %v,%v", lat, lon)
		assert.InDelta(t, lon, back.Lon, 1e-3, "mgrs lon %v,%v", lat, lon)

		grid, err := m.utm()
		require.NoError(t, err)
		assert.Equal(t, u.Zone, grid.Zone)
		assert.InDelta(t, u.Easting, grid.Easting, 1, "mgrs easting %v,%v", lat, lon)
		assert.InDelta(t, u.Northing, grid.Northing, 1, "mgrs northing %v,%v", lat, lon)
	}
}

func TestPivotConversions(t *testing.T) {
	dms := DMS{
		Lat: DMSLatitude{Degrees: 48, Minutes: 51, Seconds: 29.52, Hemisphere: North},
		Lon: DMSLongitude{Degrees: 2, Minutes: 17, Seconds: 40.2, Hemisphere: East},
	}

	m, err := dms.ToMGRS(5)
	require.NoError(t, err)
	assert.Equal(t, "31UDQ4825111932", m.String())

	u, err := dms.ToUTM()
	require.NoError(t, err)
	assert.Equal(t, "31U4482525411933", u.String())

	fromGrid, err := m.ToDMS()
	require.NoError(t, err)
	assert.Equal(t, dms.Lat.Degrees, fromGrid.Lat.Degrees)
	assert.Equal(t, dms.Lat.Minutes, fromGrid.Lat.Minutes)
	assert.InDelta(t, dms.Lat.Seconds, fromGrid.Lat.Seconds, 0.1)

	gridUTM, err := m.ToUTM()
	require.NoError(t, err)
	assert.InDelta(t, 448251, gridUTM.Easting, 0.01)
	assert.InDelta(t, 5411932, gridUTM.Northing, 0.01)

	again, err := u.ToMGRS(3)
	require.NoError(t, err)
	assert.Equal(t, "31UDQ482119", again.String())
}

func TestRangeErrors(t *testing.T) {
	_, err := NewDecimalDegrees(91, 0)
	require.ErrorIs(t, err, ErrOutOfRange)

	var re *RangeError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "latitude", re.Field)

	_, err = NewDecimalDegrees(0, -180.5)
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "longitude", re.Field)

	_, err = DecimalDegrees{Lat: 1, Lon: 2}.ToMGRS(6)
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "precision", re.Field)

	for _, lat := range []float64{-90, -80.5, 84.01, 89.999, 90} {
		dd, err := NewDecimalDegrees(lat, 10)
		require.NoError(t, err)

		_, err = dd.ToMGRS(MaxPrecision)
		require.ErrorAs(t, err, &re, "lat %v", lat)
		assert.Equal(t, "latitude", re.Field)

		dms, err := dd.ToDMS()
		require.NoError(t, err)
		_, err = dms.ToMGRS(MaxPrecision)
		assert.ErrorIs(t, err, ErrOutOfRange, "dms lat %v", lat)
	}

	_, err = NewUTM(32, 'U', 0, 5710000)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = DMS{
		Lat: DMSLatitude{Degrees: 10, Minutes: 60, Hemisphere: North},
		Lon: DMSLongitude{Degrees: 10, Hemisphere: East},
	}.ToDecimalDegrees()
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = DMS{
		Lat: DMSLatitude{Degrees: 90, Minutes: 30, Hemisphere: North},
		Lon: DMSLongitude{Degrees: 10, Hemisphere: East},
	}.ToDecimalDegrees()
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestFormatErrors(t *testing.T) {
	tests := []struct {
		name string
		u    UTM
	}{
		{"zone 0", UTM{Zone: 0, Band: 'U', Easting: 500000, Northing: 1, North: true}},
		{"zone 61", UTM{Zone: 61, Band: 'U', Easting: 500000, Northing: 1, North: true}},
		{"band I", UTM{Zone: 31, Band: 'I', Easting: 500000, Northing: 1}},
		{"band O", UTM{Zone: 31, Band: 'O', Easting: 500000, Northing: 1, North: true}},
		{"hemisphere mismatch", UTM{Zone: 31, Band: 'U', Easting: 500000, Northing: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.u.ToDecimalDegrees()
			require.ErrorIs(t, err, ErrInvalidFormat)

			var fe *FormatError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, "utm", fe.Kind)
		})
	}

	_, err := DMS{
		Lat: DMSLatitude{Degrees: 10, Hemisphere: East},
		Lon: DMSLongitude{Degrees: 10, Hemisphere: East},
	}.ToUTM()
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestConversionsDoNotMutate(t *testing.T) {
	dd := DecimalDegrees{Lat: 51.2, Lon: 7.5}
	_, _ = dd.ToMGRS(5)
	_, _ = dd.ToDMS()
	assert.Equal(t, DecimalDegrees{Lat: 51.2, Lon: 7.5}, dd)

	m := MGRS{Zone: 32, Band: 'U', Column: 'L', Row: 'C', X: 40000, Y: 10000, Precision: 5}
	before := m
	_, _ = m.ToUTM()
	assert.Equal(t, before, m)
}
