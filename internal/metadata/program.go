package metadata

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/jam1729/create-update-burn-nft/internal/model"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// ProgramID is the Metaplex token-metadata program
var ProgramID = solana.MustPublicKeyFromBase58("metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s")

// Instruction discriminators of the token-metadata program
const (
	instructionUpdateMetadataAccountV2 uint8 = 15
	instructionCreateMasterEditionV3   uint8 = 17
	instructionCreateMetadataAccountV3 uint8 = 33
)

const (
	seedMetadata = "metadata"
	seedEdition  = "edition"
)

// MetadataAddress derives the metadata account of a mint
func MetadataAddress(mint solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress([][]byte{
		[]byte(seedMetadata),
		ProgramID[:],
		mint[:],
	}, ProgramID)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to derive metadata address: %w", err)
	}
	return addr, nil
}

// EditionAddress derives the master edition account of a mint
func EditionAddress(mint solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress([][]byte{
		[]byte(seedMetadata),
		ProgramID[:],
		mint[:],
		[]byte(seedEdition),
	}, ProgramID)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to derive edition address: %w", err)
	}
	return addr, nil
}

// CreateMetadataInstruction builds CreateMetadataAccountV3 for a freshly created mint.
// authority is mint authority, update authority and payer.
func CreateMetadataInstruction(md *model.Metadata, uri string, mint, authority solana.PublicKey) (solana.Instruction, error) {
	metadataAccount, err := MetadataAddress(mint)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := bin.NewBorshEncoder(&buf)
	if err := enc.WriteUint8(instructionCreateMetadataAccountV3); err != nil {
		return nil, err
	}
	if err := encodeDataV2(enc, md, uri); err != nil {
		return nil, err
	}
	if err := enc.WriteBool(true); err != nil { // is_mutable
		return nil, err
	}
	if err := writeNone(enc); err != nil { // collection_details
		return nil, err
	}

	return solana.NewInstruction(ProgramID, solana.AccountMetaSlice{
		{PublicKey: metadataAccount, IsWritable: true},
		{PublicKey: mint},
		{PublicKey: authority, IsSigner: true},
		{PublicKey: authority, IsSigner: true, IsWritable: true},
		{PublicKey: authority, IsSigner: true},
		{PublicKey: solana.SystemProgramID},
		{PublicKey: solana.SysVarRentPubkey},
	}, buf.Bytes()), nil
}

// UpdateMetadataInstruction builds UpdateMetadataAccountV2 replacing the data of an existing mint.
// Update authority, primary sale and mutability are left unchanged.
func UpdateMetadataInstruction(md *model.Metadata, uri string, mint, authority solana.PublicKey) (solana.Instruction, error) {
	metadataAccount, err := MetadataAddress(mint)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := bin.NewBorshEncoder(&buf)
	if err := enc.WriteUint8(instructionUpdateMetadataAccountV2); err != nil {
		return nil, err
	}
	if err := enc.WriteBool(true); err != nil { // Some(data)
		return nil, err
	}
	if err := encodeDataV2(enc, md, uri); err != nil {
		return nil, err
	}
	for i := 0; i < 3; i++ { // update_authority, primary_sale_happened, is_mutable
		if err := writeNone(enc); err != nil {
			return nil, err
		}
	}

	return solana.NewInstruction(ProgramID, solana.AccountMetaSlice{
		{PublicKey: metadataAccount, IsWritable: true},
		{PublicKey: authority, IsSigner: true},
	}, buf.Bytes()), nil
}

// CreateMasterEditionInstruction builds CreateMasterEditionV3 capping prints at maxSupply
func CreateMasterEditionInstruction(maxSupply uint64, mint, authority solana.PublicKey) (solana.Instruction, error) {
	metadataAccount, err := MetadataAddress(mint)
	if err != nil {
		return nil, err
	}
	editionAccount, err := EditionAddress(mint)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := bin.NewBorshEncoder(&buf)
	if err := enc.WriteUint8(instructionCreateMasterEditionV3); err != nil {
		return nil, err
	}
	if err := enc.WriteBool(true); err != nil { // Some(max_supply)
		return nil, err
	}
	if err := enc.WriteUint64(maxSupply, binary.LittleEndian); err != nil {
		return nil, err
	}

	return solana.NewInstruction(ProgramID, solana.AccountMetaSlice{
		{PublicKey: editionAccount, IsWritable: true},
		{PublicKey: mint, IsWritable: true},
		{PublicKey: authority, IsSigner: true},
		{PublicKey: authority, IsSigner: true},
		{PublicKey: authority, IsSigner: true, IsWritable: true},
		{PublicKey: metadataAccount, IsWritable: true},
		{PublicKey: solana.TokenProgramID},
		{PublicKey: solana.SystemProgramID},
		{PublicKey: solana.SysVarRentPubkey},
	}, buf.Bytes()), nil
}

// encodeDataV2 writes the borsh form of DataV2: name, symbol, uri, fee,
// Option<Vec<Creator>>, collection: None, uses: None
func encodeDataV2(enc *bin.Encoder, md *model.Metadata, uri string) error {
	if len(uri) > MaxURILength {
		return fmt.Errorf("uri longer than %d bytes: %w", MaxURILength, ErrInvalidInput)
	}
	if err := ValidateCreators(md.Creators); err != nil {
		return err
	}
	if err := enc.WriteString(md.Name); err != nil {
		return err
	}
	if err := enc.WriteString(md.Symbol); err != nil {
		return err
	}
	if err := enc.WriteString(uri); err != nil {
		return err
	}
	if err := enc.WriteUint16(md.SellerFeeBasisPoints, binary.LittleEndian); err != nil {
		return err
	}

	if err := enc.WriteBool(true); err != nil { // Some(creators)
		return err
	}
	if err := enc.WriteUint32(uint32(len(md.Creators)), binary.LittleEndian); err != nil {
		return err
	}
	for _, c := range md.Creators {
		addr := solana.MustPublicKeyFromBase58(c.Address)
		if err := enc.WriteBytes(addr[:], false); err != nil {
			return err
		}
		if err := enc.WriteBool(c.Verified); err != nil {
			return err
		}
		if err := enc.WriteUint8(c.Share); err != nil {
			return err
		}
	}

	if err := writeNone(enc); err != nil { // collection
		return err
	}
	return writeNone(enc) // uses
}

func writeNone(enc *bin.Encoder) error {
	return enc.WriteUint8(0)
}
