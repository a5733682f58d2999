// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

// CRC-16/XMODEM: polynomial 0x1021, initial value 0, MSB first, no final XOR
const crc16Polynomial = 0x1021

var crc16Table [256]uint16

func init() {
	for i := 0; i < len(crc16Table); i += 1 {
		crc := uint16(i) << 8
		for bit := 0; bit < 8; bit += 1 {
			if 0 != crc&0x8000 {
				crc = crc<<1 ^ crc16Polynomial
			} else {
				crc <<= 1
			}
		}
		crc16Table[i] = crc
	}
}

// Checksum - compute the CRC-16/XMODEM of a buffer
func Checksum(data []byte) uint16 {
	crc := uint16(0)
	for _, b := range data {
		crc = crc<<8 ^ crc16Table[byte(crc>>8)^b]
	}
	return crc
}
