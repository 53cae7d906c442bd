package server

import (
	"encoding/json"
	"io"
	"io/ioutil"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/bokysan/basecodec/internal/codec"
	"github.com/bokysan/basecodec/internal/util/enc"
)

// codecHandler serves the codec API of one endpoint.
type codecHandler struct {
	encodings []enc.Encoding
	maxBody   int64
	upgrader  websocket.Upgrader
}

// CodecInfo is one element of the `GET /codecs` response.
type CodecInfo struct {
	Name             string `json:"name"`
	Code             string `json:"code"`
	BlocksizeRaw     int    `json:"blocksizeRaw"`
	BlocksizeEncoded int    `json:"blocksizeEncoded"`
	Streaming        bool   `json:"streaming"`
}

func newCodecHandler(encodings []enc.Encoding, maxBody int64, compression bool) *codecHandler {
	return &codecHandler{
		encodings: encodings,
		maxBody:   maxBody,
		upgrader: websocket.Upgrader{
			EnableCompression: compression,
		},
	}
}

func (h *codecHandler) routes(r chi.Router) {
	r.Get("/codecs", h.codecs)
	r.Post("/encode/{codec}", h.transcode(true))
	r.Post("/decode/{codec}", h.transcode(false))
	r.Get("/number/encode/{value}", h.number(true))
	r.Get("/number/decode/{symbols}", h.number(false))
	r.Get("/ws/{op}/{codec}", h.stream)
}

// lookup finds the encoding among the ones this endpoint serves.
func (h *codecHandler) lookup(name string) (enc.Encoding, bool) {
	e, ok := enc.Lookup(name)
	if !ok {
		return nil, false
	}
	for _, a := range h.encodings {
		if a == e {
			return e, true
		}
	}
	return nil, false
}

// prepare resolves the codec and its options of the request. On failure the response is already
// written.
func (h *codecHandler) prepare(w http.ResponseWriter, r *http.Request) (enc.Encoding, codec.Options, bool) {
	name := chi.URLParam(r, "codec")
	e, ok := h.lookup(name)
	if !ok {
		http.Error(w, "Unknown encoding: "+name, http.StatusNotFound)
		return nil, codec.None, false
	}
	opts, err := codec.ParseOptions(r.URL.Query().Get("options"))
	if err != nil {
		writeError(w, err)
		return nil, codec.None, false
	}
	return e, opts, true
}

func (h *codecHandler) codecs(w http.ResponseWriter, r *http.Request) {
	res := make([]CodecInfo, 0, len(h.encodings))
	for _, e := range h.encodings {
		res = append(res, CodecInfo{
			Name:             e.Name(),
			Code:             string(e.Code()),
			BlocksizeRaw:     e.BlocksizeRaw(),
			BlocksizeEncoded: e.BlocksizeEncoded(),
			Streaming:        e.Streaming(),
		})
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		log.WithError(err).Warnf("Could not write the codec list: %v", err)
	}
}

func (h *codecHandler) transcode(encode bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, opts, ok := h.prepare(w, r)
		if !ok {
			return
		}

		var body io.Reader = r.Body
		if h.maxBody > 0 {
			body = io.LimitReader(r.Body, h.maxBody+1)
		}
		data, err := ioutil.ReadAll(body)
		if err != nil {
			http.Error(w, "Could not read request body: "+err.Error(), http.StatusBadRequest)
			return
		}
		if h.maxBody > 0 && int64(len(data)) > h.maxBody {
			http.Error(w, "Request body exceeds "+strconv.FormatInt(h.maxBody, 10)+" bytes", http.StatusRequestEntityTooLarge)
			return
		}

		var out []byte
		contentType := "application/octet-stream"
		if encode {
			var s string
			s, err = enc.EncodeToString(e, data, opts)
			out = []byte(s)
			contentType = "text/plain; charset=utf-8"
		} else {
			out, err = enc.DecodeString(e, string(data), opts)
		}
		if err != nil {
			writeError(w, err)
			return
		}

		log.Debugf("%v [%v]: %d bytes in, %d bytes out", e.Name(), opts, len(data), len(out))
		w.Header().Set("Content-Type", contentType)
		if _, err := w.Write(out); err != nil {
			log.WithError(err).Debugf("Could not write response: %v", err)
		}
	}
}

func (h *codecHandler) number(encode bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := codec.ParseOptions(r.URL.Query().Get("options"))
		if err != nil {
			writeError(w, err)
			return
		}
		bits := 64
		if b := r.URL.Query().Get("bits"); b != "" {
			if bits, err = strconv.Atoi(b); err != nil {
				http.Error(w, "Invalid bits: "+b, http.StatusBadRequest)
				return
			}
		}

		var res string
		if encode {
			res, err = enc.EncodeNumber(chi.URLParam(r, "value"), bits, opts)
		} else {
			res, err = enc.DecodeNumber(chi.URLParam(r, "symbols"), bits, opts)
		}
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, res)
	}
}

// writeError maps err to a `400 Bad Request` carrying the error text.
func writeError(w http.ResponseWriter, err error) {
	log.WithError(err).Debugf("Request failed: %v", err)
	var codecError *codec.Error
	if errors.As(err, &codecError) {
		http.Error(w, codecError.Error(), http.StatusBadRequest)
		return
	}
	http.Error(w, strings.TrimSpace(err.Error()), http.StatusBadRequest)
}
