package models

// Liquidity ratios.
type Liquidity struct {
	CurrentRatio  Ratio `json:"razon_circulante" yaml:"razon_circulante"`
	QuickRatio    Ratio `json:"razon_rapida" yaml:"razon_rapida"`
	NetWorkingCap Money `json:"cnt" yaml:"cnt"` // CA − CL
	OperatingWCap Money `json:"cno" yaml:"cno"` // (CA − cash) − (CL − short-term debt)
}

// Activity ratios.
type Activity struct {
	InventoryTurnover Ratio `json:"rotacion_inventarios" yaml:"rotacion_inventarios"`
	AssetTurnover     Ratio `json:"rotacion_activos_totales" yaml:"rotacion_activos_totales"`
	CollectionPeriod  Ratio `json:"periodo_cobro" yaml:"periodo_cobro"` // days
}

// Leverage ratios.
type Leverage struct {
	DebtRatio        Ratio `json:"razon_endeudamiento" yaml:"razon_endeudamiento"` // %
	DebtToEquity     Ratio `json:"razon_pasivo_capital" yaml:"razon_pasivo_capital"`
	InterestCoverage Ratio `json:"cobertura_intereses" yaml:"cobertura_intereses"`
}

// DuPont splits ROE into margin, turnover and equity multiplier.
type DuPont struct {
	Margin     Ratio `json:"margen" yaml:"margen"`
	Turnover   Ratio `json:"rotacion" yaml:"rotacion"`
	Multiplier Ratio `json:"multiplicador" yaml:"multiplicador"`
	System     Ratio `json:"sistema" yaml:"sistema"` // margen*rotacion*multiplicador*100
}

// Profitability ratios, all in percent except the DuPont factors.
type Profitability struct {
	GrossMargin     Ratio  `json:"margen_bruto" yaml:"margen_bruto"`
	OperatingMargin Ratio  `json:"margen_operativo" yaml:"margen_operativo"`
	NetMargin       Ratio  `json:"margen_neto" yaml:"margen_neto"`
	ROA             Ratio  `json:"roa" yaml:"roa"`
	ROE             Ratio  `json:"roe" yaml:"roe"`
	DuPont          DuPont `json:"dupont" yaml:"dupont"`
}

// RatioSet holds every ratio of one year.
type RatioSet struct {
	Year          int           `json:"year" yaml:"year"`
	Liquidity     Liquidity     `json:"liquidez" yaml:"liquidez"`
	Activity      Activity      `json:"actividad" yaml:"actividad"`
	Leverage      Leverage      `json:"endeudamiento" yaml:"endeudamiento"`
	Profitability Profitability `json:"rentabilidad" yaml:"rentabilidad"`
}
