package compass

import (
	"bytes"
	"crypto/tls"
	"encoding/xml"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/samuel/go-metrics/metrics"
)

const xmlContentType = "text/xml; charset=utf-8"

type soapEnvelope struct {
	XMLName  xml.Name `xml:"http://schemas.xmlsoap.org/soap/envelope/ Envelope"`
	SOAPBody soapBody `xml:"Body"`
}

type soapBody struct {
	RequestBody []byte `xml:",innerxml"`
}

type soapFault struct {
	XMLName     xml.Name `xml:"Fault"`
	FaultCode   string   `xml:"faultcode"`
	FaultString string   `xml:"faultstring"`
}

// Fault is a SOAP fault raised by the remote service.
type Fault struct {
	Code   string
	Reason string
}

func (f *Fault) Error() string {
	return fmt.Sprintf("compass: fault %s: %s", f.Code, f.Reason)
}

type soapClient struct {
	endpoint   string
	actionBase string
	httpClient *http.Client

	statLatency metrics.Histogram
	statSuccess *metrics.Counter
	statFailure *metrics.Counter
}

func newSOAPClient(endpoint, actionBase, username, password string, insecureSkipVerify bool, metricsRegistry metrics.Registry) *soapClient {
	transport := &http.Transport{}
	if insecureSkipVerify {
		// Some partner hosts present certificates that fail CN validation.
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	c := &soapClient{
		endpoint: endpoint,
		httpClient: &http.Client{
			Transport: &basicAuthTransport{username: username, password: password, rt: transport},
		},
		actionBase:  actionBase,
		statLatency: metrics.NewUnbiasedHistogram(),
		statSuccess: metrics.NewCounter(),
		statFailure: metrics.NewCounter(),
	}
	if metricsRegistry != nil {
		metricsRegistry.Add("requests/latency", c.statLatency)
		metricsRegistry.Add("requests/succeeded", c.statSuccess)
		metricsRegistry.Add("requests/failed", c.statFailure)
	}
	return c
}

type basicAuthTransport struct {
	username string
	password string
	rt       http.RoundTripper
}

func (t *basicAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.username != "" {
		req.SetBasicAuth(t.username, t.password)
	}
	return t.rt.RoundTrip(req)
}

// makeSoapRequest wraps requestMessage in a SOAP envelope, posts it with the
// named SOAPAction and decodes the response body into result. A SOAP fault in
// the response is returned as *Fault.
func (s *soapClient) makeSoapRequest(soapAction string, requestMessage, result interface{}, cookies ...*http.Cookie) error {
	requestBody, err := xml.Marshal(requestMessage)
	if err != nil {
		return errors.Wrap(err, "compass: marshal request")
	}
	envelope := soapEnvelope{
		SOAPBody: soapBody{
			RequestBody: requestBody,
		},
	}
	buffer := new(bytes.Buffer)
	buffer.WriteString(xml.Header)
	if err := xml.NewEncoder(buffer).Encode(&envelope); err != nil {
		return errors.Wrap(err, "compass: encode envelope")
	}

	startTime := time.Now()
	req, err := http.NewRequest("POST", s.endpoint, buffer)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", xmlContentType)
	req.Header.Set("SOAPAction", s.actionBase+soapAction)
	for _, c := range cookies {
		req.AddCookie(c)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.statFailure.Inc(1)
		return errors.Wrapf(err, "compass: %s", soapAction)
	}
	defer resp.Body.Close()

	s.statLatency.Update(time.Since(startTime).Nanoseconds() / 1e3)

	responseEnvelope := &soapEnvelope{}
	if err := xml.NewDecoder(resp.Body).Decode(responseEnvelope); err != nil {
		s.statFailure.Inc(1)
		return errors.Wrapf(err, "compass: decode %s response", soapAction)
	}

	fault := &soapFault{}
	if err := xml.Unmarshal(responseEnvelope.SOAPBody.RequestBody, fault); err == nil && fault.FaultString != "" {
		s.statFailure.Inc(1)
		return &Fault{Code: fault.FaultCode, Reason: fault.FaultString}
	}

	if result != nil {
		if err := xml.Unmarshal(responseEnvelope.SOAPBody.RequestBody, result); err != nil {
			s.statFailure.Inc(1)
			return errors.Wrapf(err, "compass: unmarshal %s result", soapAction)
		}
	}

	s.statSuccess.Inc(1)
	return nil
}
