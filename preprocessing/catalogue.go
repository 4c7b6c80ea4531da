package preprocessing

// Catalogue keys of DefaultRegistry, in execution order.
const (
	KeyDropDuplicates  = "drop_duplicates"
	KeyExtractBrand    = "extract_brand"
	KeyAge             = "age"
	KeyDropYear        = "drop_year"
	KeyMapOwner        = "map_owner"
	KeyStripUnits      = "strip_units"
	KeyTypeCast        = "type_cast"
	KeyLogTransform    = "log_transform"
	KeyOneHotEncode    = "one_hot_encode"
	KeyStandardScaling = "standard_scaling"
	KeyMinMaxScaling   = "minmax_scaling"
)

// CarFeatures are the continuous columns of the used-car listing dataset
// after unit stripping.
var CarFeatures = []string{"km_driven", "mileage", "engine", "max_power", "age"}

// CarCategories are the categorical columns of the used-car listing dataset.
var CarCategories = []string{"fuel", "seller_type", "transmission", "brand"}

// DefaultEntries returns the used-car feature catalogue. referenceYear is
// the year ages are computed against.
func DefaultEntries(referenceYear int) []Entry {
	return []Entry{
		{KeyDropDuplicates, DropDuplicates{}},
		{KeyExtractBrand, SplitExtract{Source: "name", Target: "brand", Delimiter: " ", Index: 0}},
		{KeyAge, DifferenceFromConstant{Source: "year", Target: "age", Constant: float64(referenceYear)}},
		{KeyDropYear, DropColumns{Columns: []string{"year"}}},
		{KeyMapOwner, NewNumericMapping("owner", map[string]float64{
			"First Owner":  1,
			"Second Owner": 2,
			"Third Owner":  3,
		})},
		{KeyStripUnits, MustStripUnits(map[string]string{
			"mileage":   `(kmpl|km/kg)`,
			"engine":    `CC`,
			"max_power": `b(h)?p`,
		})},
		{KeyTypeCast, CastTypes{Types: map[string]string{
			"mileage":   "float",
			"engine":    "float",
			"max_power": "float",
			"seats":     "str",
		}}},
		{KeyLogTransform, LogTransform{Columns: []string{"selling_price", "max_power", "age"}}},
		{KeyOneHotEncode, OneHotEncoding{Columns: CarCategories}},
		{KeyStandardScaling, StandardScaling{Columns: CarFeatures}},
		{KeyMinMaxScaling, MinMaxScaling{Columns: CarFeatures}},
	}
}

// DefaultRegistry returns a registry over DefaultEntries.
func DefaultRegistry(referenceYear int, opts ...Option) (*Registry, error) {
	return NewRegistry(DefaultEntries(referenceYear), opts...)
}
