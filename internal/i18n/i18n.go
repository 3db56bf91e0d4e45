// Package i18n renders user-facing messages in the caller's language.
// The active language travels with each request as a *Localizer instead of
// being a process-wide setting.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys.
const (
	MsgClockInSuccess     = "clockin.success"
	MsgMalformedToken     = "clockin.malformed"
	MsgIdentityMismatch   = "clockin.identity_mismatch"
	MsgTokenExpired       = "clockin.expired"
	MsgAlreadyClockedIn   = "clockin.already"
	MsgPersistenceError   = "clockin.persistence"
	MsgScanInProgress     = "clockin.in_progress"
	MsgCoolingDown        = "clockin.cooling_down"
	MsgSessionCompleted   = "clockin.session_completed"
	MsgSessionClosed      = "clockin.session_closed"
	MsgSessionNotFound    = "clockin.session_not_found"
	MsgApplicantApproved  = "employee.approved"
	MsgApplicantRejected  = "employee.rejected"
	MsgEmployeeCreated    = "employee.created"
	MsgAccountPending     = "auth.pending"
	MsgInvalidCredentials = "auth.invalid_credentials"
)

var supported = []language.Tag{language.English, language.French, language.Arabic}

var matcher = language.NewMatcher(supported)

var cat = buildCatalog()

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	set := func(tag language.Tag, entries map[string]string) {
		for key, msg := range entries {
			if err := b.SetString(tag, key, msg); err != nil {
				panic(err)
			}
		}
	}

	set(language.English, map[string]string{
		MsgClockInSuccess:     "Clock-in successful! You clocked in at %s.",
		MsgMalformedToken:     "Invalid code. This QR code is not a clock-in code.",
		MsgIdentityMismatch:   "This QR code belongs to another employee. Scan your own code.",
		MsgTokenExpired:       "This QR code has expired. Scan the freshly displayed code.",
		MsgAlreadyClockedIn:   "You have already clocked in today.",
		MsgPersistenceError:   "Your clock-in could not be saved. Please scan again.",
		MsgScanInProgress:     "A scan is already being processed.",
		MsgCoolingDown:        "Please wait %s before scanning again.",
		MsgSessionCompleted:   "You are clocked in. Close the scanner to finish.",
		MsgSessionClosed:      "This scanner has been closed.",
		MsgSessionNotFound:    "Scanner session not found or expired. Open the scanner again.",
		MsgApplicantApproved:  "%s's account has been approved.",
		MsgApplicantRejected:  "%s's application has been rejected.",
		MsgEmployeeCreated:    "%s has been added as a new employee.",
		MsgAccountPending:     "Your account is awaiting approval.",
		MsgInvalidCredentials: "Invalid email or password.",
	})
	set(language.French, map[string]string{
		MsgClockInSuccess:     "Pointage réussi ! Vous avez pointé à %s.",
		MsgMalformedToken:     "Code invalide. Ce QR code n'est pas un code de pointage.",
		MsgIdentityMismatch:   "Ce QR code appartient à un autre employé. Scannez votre propre code.",
		MsgTokenExpired:       "Ce QR code a expiré. Scannez le code nouvellement affiché.",
		MsgAlreadyClockedIn:   "Vous avez déjà pointé aujourd'hui.",
		MsgPersistenceError:   "Votre pointage n'a pas pu être enregistré. Veuillez scanner à nouveau.",
		MsgScanInProgress:     "Un scan est déjà en cours de traitement.",
		MsgCoolingDown:        "Veuillez patienter %s avant de scanner à nouveau.",
		MsgSessionCompleted:   "Vous avez pointé. Fermez le scanner pour terminer.",
		MsgSessionClosed:      "Ce scanner a été fermé.",
		MsgSessionNotFound:    "Session de scan introuvable ou expirée. Rouvrez le scanner.",
		MsgApplicantApproved:  "Le compte de %s a été approuvé.",
		MsgApplicantRejected:  "La candidature de %s a été refusée.",
		MsgEmployeeCreated:    "%s a été ajouté(e) comme nouvel employé.",
		MsgAccountPending:     "Votre compte est en attente d'approbation.",
		MsgInvalidCredentials: "E-mail ou mot de passe invalide.",
	})
	set(language.Arabic, map[string]string{
		MsgClockInSuccess:     "تم تسجيل الحضور بنجاح! سجلت حضورك في %s.",
		MsgMalformedToken:     "رمز غير صالح. رمز QR هذا ليس رمز تسجيل حضور.",
		MsgIdentityMismatch:   "رمز QR هذا يخص موظفًا آخر. امسح رمزك الخاص.",
		MsgTokenExpired:       "انتهت صلاحية رمز QR هذا. امسح الرمز المعروض حديثًا.",
		MsgAlreadyClockedIn:   "لقد سجلت حضورك اليوم بالفعل.",
		MsgPersistenceError:   "تعذر حفظ تسجيل حضورك. يرجى المسح مرة أخرى.",
		MsgScanInProgress:     "تتم معالجة عملية مسح بالفعل.",
		MsgCoolingDown:        "يرجى الانتظار %s قبل المسح مرة أخرى.",
		MsgSessionCompleted:   "تم تسجيل حضورك. أغلق الماسح للإنهاء.",
		MsgSessionClosed:      "تم إغلاق هذا الماسح.",
		MsgSessionNotFound:    "جلسة المسح غير موجودة أو منتهية. افتح الماسح مرة أخرى.",
		MsgApplicantApproved:  "تمت الموافقة على حساب %s.",
		MsgApplicantRejected:  "تم رفض طلب %s.",
		MsgEmployeeCreated:    "تمت إضافة %s كموظف جديد.",
		MsgAccountPending:     "حسابك في انتظار الموافقة.",
		MsgInvalidCredentials: "البريد الإلكتروني أو كلمة المرور غير صحيحة.",
	})
	return b
}

// Localizer renders messages for one language.
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a Localizer for the best supported match of lang (English when nothing matches).
func New(lang string) *Localizer {
	tag, _, _ := matcher.Match(language.Make(lang))
	return newLocalizer(tag)
}

// FromAcceptLanguage picks the language from an explicit query value first,
// then the Accept-Language header, then fallback.
func FromAcceptLanguage(query, header, fallback string) *Localizer {
	if query != "" {
		return New(query)
	}
	if header != "" {
		if tags, _, err := language.ParseAcceptLanguage(header); err == nil && len(tags) > 0 {
			tag, _, _ := matcher.Match(tags...)
			return newLocalizer(tag)
		}
	}
	return New(fallback)
}

func newLocalizer(tag language.Tag) *Localizer {
	base, _ := tag.Base()
	canonical := language.Make(base.String())
	return &Localizer{
		tag:     canonical,
		printer: message.NewPrinter(canonical, message.Catalog(cat)),
	}
}

// Lang returns the BCP 47 code of the localizer, e.g. "fr".
func (l *Localizer) Lang() string {
	return l.tag.String()
}

// Dir returns the text direction, "rtl" for Arabic.
func (l *Localizer) Dir() string {
	if strings.HasPrefix(l.Lang(), "ar") {
		return "rtl"
	}
	return "ltr"
}

// T renders key with args.
func (l *Localizer) T(key string, args ...interface{}) string {
	return l.printer.Sprintf(key, args...)
}
