package dto

// PageQuery là tham số phân trang trên query string
type PageQuery struct {
	Page  int `form:"page" binding:"omitempty,gte=1"`
	Limit int `form:"limit" binding:"omitempty,gte=1,lte=100"`
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Normalize gán giá trị mặc định cho page/limit
func (q *PageQuery) Normalize() {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
}

// OwnerInfo là thông tin công khai của user, không gồm email
type OwnerInfo struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
