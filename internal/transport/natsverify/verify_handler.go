// Package natsverify は他サービス向けに access token の検証を NATS の request/reply で返す。
package natsverify

import (
	"encoding/json"
	"errors"

	"devmarket/internal/logger"
	"devmarket/internal/token"

	"github.com/nats-io/nats.go"
)

// 期限切れを許さない検証だけを使う
type Decoder interface {
	Decode(raw string) (*token.Claims, error)
}

type VerifyHandler struct {
	codec     Decoder
	log       logger.Logger
	respondFn func(msg *nats.Msg, resp verifyResponse)
}

type verifyRequest struct {
	Token string `json:"token"`
}

type verifyResponse struct {
	OK          bool     `json:"ok"`
	Subject     string   `json:"subject,omitempty"`
	Authorities []string `json:"authorities,omitempty"`
	Error       string   `json:"error,omitempty"`
}

func NewVerifyHandler(codec Decoder, log logger.Logger) *VerifyHandler {
	h := &VerifyHandler{codec: codec, log: log}
	h.respondFn = h.respond
	return h
}

// queueはアプリ名。複数台でも1回だけ応答する
func (h *VerifyHandler) Subscribe(conn *nats.Conn, subject, queue string) (*nats.Subscription, error) {
	if conn == nil {
		return nil, errors.New("nats connection is nil")
	}
	return conn.QueueSubscribe(subject, queue, h.handle)
}

func (h *VerifyHandler) handle(msg *nats.Msg) {
	var req verifyRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil || req.Token == "" {
		h.respondFn(msg, verifyResponse{OK: false, Error: "invalid_payload"})
		return
	}

	claims, err := h.codec.Decode(req.Token)
	if err != nil {
		if errors.Is(err, token.ErrExpired) {
			h.respondFn(msg, verifyResponse{OK: false, Error: "expired"})
			return
		}
		h.respondFn(msg, verifyResponse{OK: false, Error: "invalid_token"})
		return
	}
	if claims.Kind != token.KindAccess {
		h.respondFn(msg, verifyResponse{OK: false, Error: "invalid_token"})
		return
	}

	h.respondFn(msg, verifyResponse{OK: true, Subject: claims.Subject, Authorities: claims.AuthorityList()})
}

func (h *VerifyHandler) respond(msg *nats.Msg, resp verifyResponse) {
	data, _ := json.Marshal(resp)
	if err := msg.Respond(data); err != nil {
		h.log.Warn().Err(err).Str("subject", msg.Subject).Msg("nats respond failed")
	}
}
