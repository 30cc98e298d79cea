package warehouse_api_client

// ApartmentResponse - квартира в ответе warehouse
type ApartmentResponse struct {
	ID          int      `json:"id"`
	Code        string   `json:"code"`
	Title       string   `json:"title"`
	ProjectID   int      `json:"project_id"`
	ProjectName string   `json:"project_name"`
	Price       float64  `json:"price"`
	Area        float64  `json:"area"`
	Bedrooms    int      `json:"bedrooms"`
	Bathrooms   int      `json:"bathrooms"`
	Floor       string   `json:"floor"`
	Direction   string   `json:"direction"`
	Status      string   `json:"status"`
	Demand      string   `json:"demand"`
	Images      []string `json:"images"`
	UpdatedAt   string   `json:"updated_at"`
}

type ApartmentListResponse struct {
	Data  []ApartmentResponse `json:"data"`
	Total int                 `json:"total"`
}

type ProjectResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type ProjectListResponse struct {
	Data []ProjectResponse `json:"data"`
}
