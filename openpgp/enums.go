package openpgp

// PacketTag enumerates RFC 4880 §4.3 packet types this library recognizes.
// Values not listed pass through as Unknown on decode.
type PacketTag uint8

const (
	PacketTagSignature    PacketTag = 2
	PacketTagSecretKey    PacketTag = 5
	PacketTagPublicKey    PacketTag = 6
	PacketTagSecretSubkey PacketTag = 7
	PacketTagUserID       PacketTag = 13
	PacketTagPublicSubkey PacketTag = 14
)

// OldFormatCompatible reports whether this tag may be framed with the old
// packet format — true iff its numeric value is less than 16.
func (t PacketTag) OldFormatCompatible() bool {
	return t < 16
}

// KeyAlgorithm enumerates RFC 4880/6637/EdDSA public-key algorithm IDs.
type KeyAlgorithm uint8

const (
	KeyAlgorithmRSAEncryptOrSign KeyAlgorithm = 1
	KeyAlgorithmRSAEncryptOnly   KeyAlgorithm = 2
	KeyAlgorithmRSASignOnly      KeyAlgorithm = 3
	KeyAlgorithmElgamalEncrypt   KeyAlgorithm = 16
	KeyAlgorithmDSA              KeyAlgorithm = 17
	KeyAlgorithmECDH             KeyAlgorithm = 18
	KeyAlgorithmECDSA            KeyAlgorithm = 19
	KeyAlgorithmEdDSA            KeyAlgorithm = 22
)

// HashAlgorithm enumerates RFC 4880 §9.4 hash algorithm IDs.
type HashAlgorithm uint8

const (
	HashAlgorithmMD5       HashAlgorithm = 1
	HashAlgorithmSHA1      HashAlgorithm = 2
	HashAlgorithmRIPEMD160 HashAlgorithm = 3
	HashAlgorithmSHA256    HashAlgorithm = 8
	HashAlgorithmSHA384    HashAlgorithm = 9
	HashAlgorithmSHA512    HashAlgorithm = 10
	HashAlgorithmSHA224    HashAlgorithm = 11
)

// SymmetricAlgorithm enumerates RFC 4880 §9.2 symmetric cipher IDs.
type SymmetricAlgorithm uint8

const (
	SymmetricAlgorithmPlaintext SymmetricAlgorithm = 0
	SymmetricAlgorithmIDEA      SymmetricAlgorithm = 1
	SymmetricAlgorithm3DES      SymmetricAlgorithm = 2
	SymmetricAlgorithmCAST5     SymmetricAlgorithm = 3
	SymmetricAlgorithmBlowfish  SymmetricAlgorithm = 4
	SymmetricAlgorithmAES128    SymmetricAlgorithm = 7
	SymmetricAlgorithmAES192    SymmetricAlgorithm = 8
	SymmetricAlgorithmAES256    SymmetricAlgorithm = 9
	SymmetricAlgorithmTwofish   SymmetricAlgorithm = 10
	SymmetricAlgorithmCamellia128 SymmetricAlgorithm = 11
	SymmetricAlgorithmCamellia192 SymmetricAlgorithm = 12
	SymmetricAlgorithmCamellia256 SymmetricAlgorithm = 13
)

// CompressionAlgorithm enumerates RFC 4880 §9.3 compression algorithm IDs.
type CompressionAlgorithm uint8

const (
	CompressionAlgorithmUncompressed CompressionAlgorithm = 0
	CompressionAlgorithmZIP          CompressionAlgorithm = 1
	CompressionAlgorithmZLIB         CompressionAlgorithm = 2
	CompressionAlgorithmBZip2        CompressionAlgorithm = 3
)

// SignatureType enumerates RFC 4880 §5.2.1 signature type IDs.
type SignatureType uint8

const (
	SignatureTypeBinaryDocument      SignatureType = 0x00
	SignatureTypeCanonicalText       SignatureType = 0x01
	SignatureTypeStandalone          SignatureType = 0x02
	SignatureTypeCertGeneric         SignatureType = 0x10
	SignatureTypeCertPersona         SignatureType = 0x11
	SignatureTypeCertCasual          SignatureType = 0x12
	SignatureTypeCertPositive        SignatureType = 0x13
	SignatureTypeSubkeyBinding       SignatureType = 0x18
	SignatureTypePrimaryKeyBinding   SignatureType = 0x19
	SignatureTypeKeySignature        SignatureType = 0x1f
	SignatureTypeKeyRevocation       SignatureType = 0x20
	SignatureTypeSubkeyRevocation    SignatureType = 0x28
	SignatureTypeCertRevocation      SignatureType = 0x30
	SignatureTypeTimestamp           SignatureType = 0x40
	SignatureTypeThirdPartyConfirm   SignatureType = 0x50
)

// SubpacketType enumerates RFC 4880 §5.2.3.1 signature subpacket type IDs
// this library has a typed representation for. Others pass through as
// UnknownSubpacket.
type SubpacketType uint8

const (
	SubpacketTypeCreationTime       SubpacketType = 2
	SubpacketTypeExpirationTime     SubpacketType = 3
	SubpacketTypeExportable         SubpacketType = 4
	SubpacketTypeRevocable          SubpacketType = 7
	SubpacketTypeKeyExpiration      SubpacketType = 9
	SubpacketTypePreferredSymmetric SubpacketType = 11
	SubpacketTypeIssuer             SubpacketType = 16
	SubpacketTypePreferredHash      SubpacketType = 21
	SubpacketTypePreferredCompress SubpacketType = 22
	SubpacketTypePrimaryUserID      SubpacketType = 25
	SubpacketTypeKeyFlags           SubpacketType = 27
	SubpacketTypeEmbeddedSignature  SubpacketType = 32
	SubpacketTypeIssuerFingerprint  SubpacketType = 33
)

// KeyFlag is the bitmask carried by a key-flags subpacket.
type KeyFlag uint8

const (
	KeyFlagCertify             KeyFlag = 0x01
	KeyFlagSign                KeyFlag = 0x02
	KeyFlagEncryptComms        KeyFlag = 0x04
	KeyFlagEncryptStorage      KeyFlag = 0x08
	KeyFlagSplit               KeyFlag = 0x10
	KeyFlagAuthenticate        KeyFlag = 0x20
	KeyFlagGroup               KeyFlag = 0x80
)

// Has reports whether flag is set in the mask.
func (m KeyFlag) Has(flag KeyFlag) bool {
	return m&flag != 0
}
