package news

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// ContentID возвращает детерминированный идентификатор записи по паре (title, link).
// Поля кодируются с префиксом длины, чтобы пары вида ("ab","c") и ("a","bc")
// не давали одинаковый дайджест. Категория и дата на идентификатор не влияют.
func ContentID(title, link string) string {
	h := sha256.New()

	var n [8]byte
	binary.BigEndian.PutUint64(n[:], uint64(len(title)))
	h.Write(n[:])
	h.Write([]byte(title))
	h.Write([]byte(link))

	return hex.EncodeToString(h.Sum(nil))
}
