package notify

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// SmsSender sends a single SMS. It returns false on any failure; callers
// log and continue, nothing is retried.
type SmsSender interface {
	SendSms(phoneNumber, message string) bool
}

// LogSmsSender logs messages instead of sending them. Used when no SMS
// gateway is configured.
type LogSmsSender struct{}

// SendSms logs the message and reports success.
func (s *LogSmsSender) SendSms(phoneNumber, message string) bool {
	log.WithFields(log.Fields{
		"phone": phoneNumber,
	}).Infof("SMS would be sent: %s", message)
	return true
}

// NetgsmSender sends SMS through the Netgsm HTTP API.
type NetgsmSender struct {
	BaseURL  string
	Usercode string
	Password string
	Header   string
	Client   *http.Client
}

// SendSms issues the gateway request. Netgsm replies with a numeric
// result code; 00, 01 and 02 mean the message was accepted.
func (s *NetgsmSender) SendSms(phoneNumber, message string) bool {
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	params := url.Values{}
	params.Set("usercode", s.Usercode)
	params.Set("password", s.Password)
	params.Set("gsmno", phoneNumber)
	params.Set("message", message)
	params.Set("msgheader", s.Header)

	resp, err := client.Get(s.BaseURL + "?" + params.Encode())
	if err != nil {
		log.WithError(err).Errorf("Failed to send SMS to %s", phoneNumber)
		return false
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.WithError(err).Errorf("Failed to read SMS gateway response for %s", phoneNumber)
		return false
	}

	code := strings.TrimSpace(string(body))
	switch {
	case strings.HasPrefix(code, "00"), strings.HasPrefix(code, "01"), strings.HasPrefix(code, "02"):
		return true
	default:
		log.Errorf("SMS gateway rejected message to %s: %s", phoneNumber, code)
		return false
	}
}

// NewSmsSenderFromEnv returns a Netgsm sender when credentials are set,
// otherwise the logging fallback.
func NewSmsSenderFromEnv() SmsSender {
	usercode := os.Getenv("NETGSM_USERCODE")
	password := os.Getenv("NETGSM_PASSWORD")
	if usercode == "" || password == "" {
		log.Info("SMS gateway credentials not set, using logging sender")
		return &LogSmsSender{}
	}
	baseURL := os.Getenv("NETGSM_URL")
	if baseURL == "" {
		baseURL = "https://api.netgsm.com.tr/sms/send/get/"
	}
	return &NetgsmSender{
		BaseURL:  baseURL,
		Usercode: usercode,
		Password: password,
		Header:   os.Getenv("NETGSM_HEADER"),
	}
}

// SmsService builds the customer-facing message texts and hands them to
// the configured sender.
type SmsService struct {
	Sender    SmsSender
	Signature string
}

// NewSmsService creates an SMS service with the shop signature appended
// to every message.
func NewSmsService(sender SmsSender) *SmsService {
	signature := os.Getenv("SMS_SIGNATURE")
	if signature == "" {
		signature = "Servis Merkezi"
	}
	return &SmsService{Sender: sender, Signature: signature}
}

// SendMaintenanceReminder sends the tiered maintenance reminder. The text
// depends on how close (or overdue) the maintenance is.
func (s *SmsService) SendMaintenanceReminder(phoneNumber, vehicleInfo string, daysUntil int) bool {
	var message string
	if daysUntil <= 0 {
		message = fmt.Sprintf("ACIL: %s aracinizin bakim suresi %d gun once dolmustur. Lutfen en kisa surede servise basvurunuz.", vehicleInfo, -daysUntil)
	} else if daysUntil <= 5 {
		message = fmt.Sprintf("UYARI: %s aracinizin bakim tarihi %d gun icinde dolacaktir. Randevu almak icin lutfen bizimle iletisime geciniz.", vehicleInfo, daysUntil)
	} else {
		message = fmt.Sprintf("%s aracinizin bakim tarihi %d gun icinde dolacaktir. Bilgilerinize sunulur.", vehicleInfo, daysUntil)
	}

	return s.Sender.SendSms(phoneNumber, message+" - "+s.Signature)
}

// SendSaleConfirmation sends a confirmation after a completed sale.
func (s *SmsService) SendSaleConfirmation(phoneNumber, customerName, vehicleInfo string) bool {
	message := fmt.Sprintf("Sayin %s, %s aracinizin satis islemi tamamlanmistir. Iyi gunlerde kullanin.", customerName, vehicleInfo)
	return s.Sender.SendSms(phoneNumber, message+" - "+s.Signature)
}

// SendCustomMessage sends a free-form message with the shop signature.
func (s *SmsService) SendCustomMessage(phoneNumber, message string) bool {
	return s.Sender.SendSms(phoneNumber, message+" - "+s.Signature)
}
