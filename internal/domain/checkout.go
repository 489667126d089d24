package domain

import "strings"

// Provinces is the closed set accepted at checkout.
var Provinces = []string{
	"بغداد",
	"البصرة",
	"نينوى",
	"أربيل",
	"النجف",
	"كربلاء",
	"ذي قار",
	"الأنبار",
	"بابل",
	"ديالى",
	"ميسان",
	"واسط",
	"صلاح الدين",
	"السليمانية",
	"دهوك",
	"المثنى",
	"القادسية",
	"كركوك",
}

func IsProvince(p string) bool {
	for _, v := range Provinces {
		if v == p {
			return true
		}
	}
	return false
}

type CheckoutForm struct {
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	Province      string `json:"province"`
	Address       string `json:"address"`
	Note          string `json:"note,omitempty"`
}

// Normalize trims every field in place.
func (f *CheckoutForm) Normalize() {
	f.CustomerName = strings.TrimSpace(f.CustomerName)
	f.CustomerPhone = strings.TrimSpace(f.CustomerPhone)
	f.Province = strings.TrimSpace(f.Province)
	f.Address = strings.TrimSpace(f.Address)
	f.Note = strings.TrimSpace(f.Note)
}

// Validate returns one FieldError per missing or invalid field.
func (f CheckoutForm) Validate() error {
	f.Normalize()
	var errs ValidationErrors
	if f.CustomerName == "" {
		errs = append(errs, FieldError{Field: "customer_name", Message: "الرجاء إدخال الاسم"})
	}
	if f.CustomerPhone == "" {
		errs = append(errs, FieldError{Field: "customer_phone", Message: "الرجاء إدخال رقم الهاتف"})
	}
	if f.Province == "" {
		errs = append(errs, FieldError{Field: "province", Message: "الرجاء اختيار المحافظة"})
	} else if !IsProvince(f.Province) {
		errs = append(errs, FieldError{Field: "province", Message: "المحافظة غير صالحة"})
	}
	if f.Address == "" {
		errs = append(errs, FieldError{Field: "address", Message: "الرجاء إدخال العنوان"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
