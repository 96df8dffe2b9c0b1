// Package address holds the static province/district/ward lookup tables
// used to render shipping addresses and to drive the dependent dropdowns on
// the checkout page. The tables cover the shop's delivery area; they are
// not a full gazetteer of Vietnam.
package address

import "sort"

// Province is a top-level administrative unit.
type Province struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// District is a second-level unit within a province.
type District struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Ward is the lowest-level unit within a district.
type Ward struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

var provinces = map[string]string{
	"hanoi":     "Hà Nội",
	"hcm":       "TP. Hồ Chí Minh",
	"danang":    "Đà Nẵng",
	"cantho":    "Cần Thơ",
	"binhduong": "Bình Dương",
}

var districts = map[string]map[string]string{
	"hanoi": {
		"badinh":   "Quận Ba Đình",
		"hoankiem": "Quận Hoàn Kiếm",
		"caugiay":  "Quận Cầu Giấy",
		"dongda":   "Quận Đống Đa",
	},
	"hcm": {
		"quan1":     "Quận 1",
		"quan3":     "Quận 3",
		"quan7":     "Quận 7",
		"thuduc":    "TP. Thủ Đức",
		"binhthanh": "Quận Bình Thạnh",
	},
	"danang": {
		"haichau":  "Quận Hải Châu",
		"thanhkhe": "Quận Thanh Khê",
		"sontra":   "Quận Sơn Trà",
	},
	"cantho": {
		"ninhkieu": "Quận Ninh Kiều",
		"cairang":  "Quận Cái Răng",
	},
	"binhduong": {
		"thudaumot": "TP. Thủ Dầu Một",
		"dian":      "TP. Dĩ An",
	},
}

var wards = map[string]map[string]string{
	"badinh": {
		"phucxa":   "Phường Phúc Xá",
		"trucbach": "Phường Trúc Bạch",
		"lieugiai": "Phường Liễu Giai",
	},
	"hoankiem": {
		"hangbac": "Phường Hàng Bạc",
		"hangdao": "Phường Hàng Đào",
	},
	"caugiay": {
		"dichvong": "Phường Dịch Vọng",
		"nghiado":  "Phường Nghĩa Đô",
	},
	"dongda": {
		"langha":    "Phường Láng Hạ",
		"khamthien": "Phường Khâm Thiên",
	},
	"quan1": {
		"bennghe":  "Phường Bến Nghé",
		"benthanh": "Phường Bến Thành",
		"dakao":    "Phường Đa Kao",
	},
	"quan3": {
		"vothisau": "Phường Võ Thị Sáu",
		"phuong9":  "Phường 9",
	},
	"quan7": {
		"tanphong": "Phường Tân Phong",
		"tanphu":   "Phường Tân Phú",
	},
	"thuduc": {
		"linhtrung": "Phường Linh Trung",
		"hiepphu":   "Phường Hiệp Phú",
	},
	"binhthanh": {
		"phuong13": "Phường 13",
		"phuong25": "Phường 25",
	},
	"haichau": {
		"thachthang": "Phường Thạch Thang",
		"hoacuong":   "Phường Hòa Cường Bắc",
	},
	"thanhkhe": {
		"chinhgian": "Phường Chính Gián",
	},
	"sontra": {
		"antai": "Phường An Hải Tây",
	},
	"ninhkieu": {
		"tanan":     "Phường Tân An",
		"xuankhanh": "Phường Xuân Khánh",
	},
	"cairang": {
		"lebinh": "Phường Lê Bình",
	},
	"thudaumot": {
		"phuhoa": "Phường Phú Hòa",
	},
	"dian": {
		"dianward": "Phường Dĩ An",
	},
}

// Provinces returns every known province, sorted by name.
func Provinces() []Province {
	out := make([]Province, 0, len(provinces))
	for code, name := range provinces {
		out = append(out, Province{Code: code, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Districts returns the districts of a province, sorted by name. An unknown
// province code yields an empty list, matching the empty dropdown the page
// renders before a province is picked.
func Districts(provinceCode string) []District {
	m := districts[provinceCode]
	out := make([]District, 0, len(m))
	for code, name := range m {
		out = append(out, District{Code: code, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Wards returns the wards of a district, sorted by name.
func Wards(districtCode string) []Ward {
	m := wards[districtCode]
	out := make([]Ward, 0, len(m))
	for code, name := range m {
		out = append(out, Ward{Code: code, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ProvinceName resolves a province code to its display name. Unknown codes
// come back as-is so a stored address never renders blank.
func ProvinceName(code string) string {
	if name, ok := provinces[code]; ok {
		return name
	}
	return code
}

// DistrictName resolves a district code to its display name.
func DistrictName(code string) string {
	for _, m := range districts {
		if name, ok := m[code]; ok {
			return name
		}
	}
	return code
}

// WardName resolves a ward code to its display name.
func WardName(code string) string {
	for _, m := range wards {
		if name, ok := m[code]; ok {
			return name
		}
	}
	return code
}

// Format renders a full human-readable shipping address from an address
// line and the cascade codes.
func Format(line, wardCode, districtCode, provinceCode string) string {
	out := line
	if wardCode != "" {
		out += ", " + WardName(wardCode)
	}
	if districtCode != "" {
		out += ", " + DistrictName(districtCode)
	}
	if provinceCode != "" {
		out += ", " + ProvinceName(provinceCode)
	}
	return out
}
