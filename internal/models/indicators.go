package models

// IndicatorReport mirrors the technical-indicator sidecar response for one
// ticker. Pointer fields are null when the sidecar could not compute a value
// (warm-up window, missing history).
type IndicatorReport struct {
	Ticker         string          `json:"ticker"`
	LatestPrice    float64         `json:"latest_price"`
	RSI            *float64        `json:"rsi"`
	MACD           *MACDIndicator  `json:"macd"`
	BollingerBands *BollingerBands `json:"bollinger_bands"`
	Volume         VolumeStats     `json:"volume"`
	Timestamp      string          `json:"timestamp"`
}

// MACDIndicator holds the MACD line, signal line, and histogram.
type MACDIndicator struct {
	MACD      *float64 `json:"macd"`
	Signal    *float64 `json:"signal"`
	Histogram *float64 `json:"histogram"`
}

// BollingerBands holds the upper/middle/lower band values.
type BollingerBands struct {
	Upper  *float64 `json:"upper"`
	Middle *float64 `json:"middle"`
	Lower  *float64 `json:"lower"`
}

// VolumeStats compares latest volume against the period average.
type VolumeStats struct {
	Current    float64 `json:"current"`
	Average    float64 `json:"average"`
	SpikeRatio float64 `json:"spike_ratio"`
}

// ScreenerCriteria filters the sidecar screener.
type ScreenerCriteria struct {
	RSIMin      float64 `json:"rsi_min"`
	RSIMax      float64 `json:"rsi_max"`
	VolumeSpike float64 `json:"volume_spike"`
}

// ScreenerMatch is one scored screener hit.
type ScreenerMatch struct {
	Ticker      string  `json:"ticker"`
	Price       float64 `json:"price"`
	RSI         float64 `json:"rsi"`
	VolumeSpike float64 `json:"volume_spike"`
	Score       float64 `json:"score"`
}

// ScreenerResult is the sidecar screener response.
type ScreenerResult struct {
	Results      []ScreenerMatch `json:"results"`
	TotalScanned int             `json:"total_scanned"`
	Matches      int             `json:"matches"`
}
