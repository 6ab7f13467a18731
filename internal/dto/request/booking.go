package request

type PointRequest struct {
	Lat *float64 `json:"lat" validate:"required,latitude"`
	Lng *float64 `json:"lng" validate:"required,longitude"`
}

type SelectTaxiRequest struct {
	TaxiID string `json:"taxi_id" validate:"required,uuid"`
}

type SelectDateRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

type SelectTimeRequest struct {
	Time string `json:"time" validate:"required,max=20"`
}

type RouteLookupRequest struct {
	Start PointRequest `json:"start" validate:"required"`
	End   PointRequest `json:"end" validate:"required"`
}
