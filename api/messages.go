package api

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// Message catalogs, keyed by language then message key. Language is
// picked from the Accept-Language header with English as the fallback.
var catalogs = map[string]map[string]string{
	"en": {
		"validation_failure":             "Validation Failure",
		"authentication_failure":         "Incorrect credentials",
		"inactive_authentication":        "Account is inactive",
		"email_failure":                  "E-mail Failure",
		"user_create_success":            "User created",
		"account_activation_success":     "Account is activated",
		"account_activation_failure":     "This account is either active or the token is invalid",
		"password_reset_request_success": "Check your e-mail for resetting your password",
		"password_update_success":        "Password updated",
		"unauthorized_password_reset":    "You are not authorized to update your password. Please follow the password reset steps again",
		"email_not_inuse":                "E-mail not found",
		"user_not_found":                 "User not found",
		"unauthorized_user_update":       "You are not authorized to update user",
		"unauthorized_user_delete":       "You are not authorized to delete user",
		"user_delete_success":            "User is deleted",
		"hoax_submit_success":            "Hoax is saved",
		"unauthorized_hoax_submit":       "You are not authorized to submit hoax",
		"unauthorized_hoax_delete":       "You are not authorized to delete this hoax",
		"hoax_delete_success":            "Hoax is deleted",
		"attachment_size_limit":          "Uploaded file cannot be bigger than 5MB",
		"username_null":                  "Username cannot be null",
		"username_size":                  "Must have min 4 and max 32 characters",
		"email_null":                     "E-mail cannot be null",
		"email_invalid":                  "E-mail is not valid",
		"email_inuse":                    "E-mail in use",
		"password_null":                  "Password cannot be null",
		"password_size":                  "Password must have at least 6 characters",
		"password_pattern":               "Password must have at least 1 uppercase, 1 lowercase letter and 1 number",
		"hoax_content_size":              "Hoax must have min 10 and max 5000 characters",
		"profile_image_size":             "Your profile image cannot be bigger than 2MB",
		"unsupported_image_file":         "Only PNG and JPG files are allowed",
	},
	"tr": {
		"validation_failure":             "Girilen degerler uygun degil",
		"authentication_failure":         "Kullanici bilgileri hatali",
		"inactive_authentication":        "Hesap aktif degil",
		"email_failure":                  "E-Posta gonderiminde hata olustu",
		"user_create_success":            "Kullanici olusturuldu",
		"account_activation_success":     "Hesap aktiflestirildi",
		"account_activation_failure":     "Hesap aktif ya da token hatali",
		"password_reset_request_success": "Sifre degistirmek icin e-posta adresinizi kontrol edin",
		"password_update_success":        "Sifre guncellendi",
		"unauthorized_password_reset":    "Sifre guncelleme yetkiniz bulunmamaktadir",
		"email_not_inuse":                "E-Posta bulunamadi",
		"user_not_found":                 "Kullanici bulunamadi",
		"unauthorized_user_update":       "Kullaniciyi guncelleme yetkiniz bulunmamaktadir",
		"unauthorized_user_delete":       "Kullaniciyi silme yetkiniz bulunmamaktadir",
		"user_delete_success":            "Kullanici silindi",
		"hoax_submit_success":            "Hoax kaydedildi",
		"unauthorized_hoax_submit":       "Hoax gonderme yetkiniz bulunmamaktadir",
		"unauthorized_hoax_delete":       "Bu hoaxi silme yetkiniz bulunmamaktadir",
		"hoax_delete_success":            "Hoax silindi",
		"attachment_size_limit":          "Dosya boyutu 5MB den buyuk olamaz",
		"username_null":                  "Kullanici adi bos olamaz",
		"username_size":                  "En az 4 en fazla 32 karakter olmali",
		"email_null":                     "E-Posta bos olamaz",
		"email_invalid":                  "E-Posta gecerli degil",
		"email_inuse":                    "Bu E-Posta kullaniliyor",
		"password_null":                  "Sifre bos olamaz",
		"password_size":                  "Sifre en az 6 karakter olmali",
		"password_pattern":               "Sifrede en az 1 buyuk, 1 kucuk harf ve 1 sayi bulunmalidir",
		"hoax_content_size":              "Hoax en az 10 en fazla 5000 karakter olmali",
		"profile_image_size":             "Profil resmi 2MB den buyuk olamaz",
		"unsupported_image_file":         "Sadece PNG ve JPG dosyalari kabul edilmektedir",
	},
}

// translate resolves a message key for the request's language. Unknown
// keys fall through untouched so new errors degrade gracefully
func translate(c *gin.Context, key string) string {
	lang := c.GetHeader("Accept-Language")
	if i := strings.IndexAny(lang, ",;-"); i != -1 {
		lang = lang[:i]
	}

	catalog, ok := catalogs[strings.ToLower(strings.TrimSpace(lang))]
	if !ok {
		catalog = catalogs["en"]
	}

	if msg, ok := catalog[key]; ok {
		return msg
	}

	if msg, ok := catalogs["en"][key]; ok {
		return msg
	}

	return key
}
