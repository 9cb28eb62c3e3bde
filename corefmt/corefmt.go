// Package corefmt 提供 seed 文字格式與引擎快照的文字／二進位編碼。
package corefmt

import (
	"bufio"
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/zintix-labs/seedlab/errs"
)

// ParseSeed 解析 seed 文字。接受 0x 前綴十六進位或十進位；
// 若字串含 a-f 而無前綴則視為十六進位（例如 "1a2b3c4d"）。
func ParseSeed(s string) (uint64, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return 0, errs.NewWarn("parse seed failed: empty")
	}
	t = strings.ReplaceAll(t, "_", "")
	base := 10
	switch {
	case strings.HasPrefix(t, "0x"), strings.HasPrefix(t, "0X"):
		t, base = t[2:], 16
	case strings.ContainsAny(t, "abcdefABCDEF"):
		base = 16
	}
	v, err := strconv.ParseUint(t, base, 64)
	if err != nil {
		return 0, &errs.E{Message: "parse seed failed", Extra: s, Cause: err, ErrLv: errs.Warn}
	}
	return v, nil
}

// ParseSeed32 同 ParseSeed，但拒絕超過 32 bits 的值。
func ParseSeed32(s string) (uint32, error) {
	v, err := ParseSeed(s)
	if err != nil {
		return 0, err
	}
	if v > 0xFFFFFFFF {
		return 0, errs.NewWithExtra(errs.Warn, "parse seed failed: exceeds 32 bits", s)
	}
	return uint32(v), nil
}

// FormatSeed32 以 8 位大寫十六進位輸出。
func FormatSeed32(v uint32) string { return fmt.Sprintf("0x%08X", v) }

// FormatSeed64 以 16 位大寫十六進位輸出。
func FormatSeed64(v uint64) string { return fmt.Sprintf("0x%016X", v) }

// FormatSeed 依值的寬度選擇 32 或 64 位格式。
func FormatSeed(v uint64) string {
	if v>>32 == 0 {
		return FormatSeed32(uint32(v))
	}
	return FormatSeed64(v)
}

func EncodeBase64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

func DecodeBase64(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, &errs.E{Message: "decode base64 failed", Cause: err, ErrLv: errs.Warn}
	}
	return b, nil
}

func EncodeHex(b []byte) string {
	return hex.EncodeToString(b)
}

func DecodeHex(s string) ([]byte, error) {
	b, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, &errs.E{Message: "decode hex failed", Cause: err, ErrLv: errs.Warn}
	}
	return b, nil
}

// DecodeSnapshot 依格式名稱解碼快照文字：hex 或 base64（預設）。
func DecodeSnapshot(format, s string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "hex":
		return DecodeHex(s)
	case "", "base64":
		return DecodeBase64(s)
	default:
		return nil, errs.Warnf("unknown snapshot format %q", format)
	}
}

// EncodeSnapshot 為 DecodeSnapshot 的反向。
func EncodeSnapshot(format string, b []byte) (string, error) {
	switch strings.ToLower(format) {
	case "hex":
		return EncodeHex(b), nil
	case "", "base64":
		return EncodeBase64(b), nil
	default:
		return "", errs.Warnf("unknown snapshot format %q", format)
	}
}

// WriteFrame 寫入 uvarint(len) || payload 的二進位框，供快照寫檔或管線傳輸。
func WriteFrame(w io.Writer, payload []byte) error {
	var hdr [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(hdr[:], uint64(len(payload)))
	if _, err := w.Write(hdr[:n]); err != nil {
		return errs.Wrap(err, "write frame header failed")
	}
	if _, err := w.Write(payload); err != nil {
		return errs.Wrap(err, "write frame payload failed")
	}
	return nil
}

// ReadFrame 讀取 WriteFrame 寫入的框。maxBytes > 0 時拒絕超過上限的長度。
func ReadFrame(r io.Reader, maxBytes uint64) ([]byte, error) {
	br, ok := r.(io.ByteReader)
	if !ok {
		bb := bufio.NewReader(r)
		br, r = bb, bb
	}
	ln, err := binary.ReadUvarint(br)
	if err != nil {
		return nil, errs.Wrap(err, "read frame header failed")
	}
	if maxBytes > 0 && ln > maxBytes {
		return nil, errs.NewWarn("read frame failed: payload exceeds maxBytes")
	}
	buf := make([]byte, ln)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, errs.Wrap(err, "read frame payload failed")
	}
	return buf, nil
}
