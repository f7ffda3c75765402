package elfheader

// Common e_machine values.
const (
	MachineNone    uint16 = 0
	Machine386     uint16 = 3
	MachineARM     uint16 = 40
	MachineX86_64  uint16 = 62
	MachineAArch64 uint16 = 183
	MachineRISCV   uint16 = 243
)

// machineNames maps every recognised e_machine value to its description.
// EM_NONE (0) is not a valid machine.
var machineNames = map[uint16]string{
	1:   "AT&T WE 32100 (EM_M32)",
	2:   "SPARC (EM_SPARC)",
	3:   "Intel 80386 (EM_386)",
	4:   "Motorola 68000 (EM_68K)",
	5:   "Motorola 88000 (EM_88K)",
	6:   "Intel MCU (EM_IAMCU)",
	7:   "Intel 80860 (EM_860)",
	8:   "MIPS I Architecture (EM_MIPS)",
	9:   "IBM System/370 Processor (EM_S370)",
	10:  "MIPS RS3000 Little-endian (EM_MIPS_RS3_LE)",
	15:  "Hewlett-Packard PA-RISC (EM_PARISC)",
	17:  "Fujitsu VPP500 (EM_VPP500)",
	18:  "Enhanced instruction set SPARC (EM_SPARC32PLUS)",
	19:  "Intel 80960 (EM_960)",
	20:  "PowerPC (EM_PPC)",
	21:  "64-bit PowerPC (EM_PPC64)",
	22:  "IBM System/390 Processor (EM_S390)",
	23:  "IBM SPU/SPC (EM_SPU)",
	36:  "NEC V800 (EM_V800)",
	37:  "Fujitsu FR20 (EM_FR20)",
	38:  "TRW RH-32 (EM_RH32)",
	39:  "Motorola RCE (EM_RCE)",
	40:  "ARM 32-bit architecture (AARCH32) (EM_ARM)",
	41:  "Digital Alpha (EM_ALPHA)",
	42:  "Hitachi SH (EM_SH)",
	43:  "SPARC Version 9 (EM_SPARCV9)",
	44:  "Siemens TriCore embedded processor (EM_TRICORE)",
	45:  "Argonaut RISC Core, Argonaut Technologies Inc. (EM_ARC)",
	46:  "Hitachi H8/300 (EM_H8_300)",
	47:  "Hitachi H8/300H (EM_H8_300H)",
	48:  "Hitachi H8S (EM_H8S)",
	49:  "Hitachi H8/500 (EM_H8_500)",
	50:  "Intel IA-64 processor architecture (EM_IA_64)",
	51:  "Stanford MIPS-X (EM_MIPS_X)",
	52:  "Motorola ColdFire (EM_COLDFIRE)",
	53:  "Motorola M68HC12 (EM_68HC12)",
	54:  "Fujitsu MMA Multimedia Accelerator (EM_MMA)",
	55:  "Siemens PCP (EM_PCP)",
	56:  "Sony nCPU embedded RISC processor (EM_NCPU)",
	57:  "Denso NDR1 microprocessor (EM_NDR1)",
	58:  "Motorola Star*Core processor (EM_STARCORE)",
	59:  "Toyota ME16 processor (EM_ME16)",
	60:  "STMicroelectronics ST100 processor (EM_ST100)",
	61:  "Advanced Logic Corp. TinyJ embedded processor family (EM_TINYJ)",
	62:  "AMD x86-64 architecture (EM_X86_64)",
	63:  "Sony DSP Processor (EM_PDSP)",
	64:  "Digital Equipment Corp. PDP-10 (EM_PDP10)",
	65:  "Digital Equipment Corp. PDP-11 (EM_PDP11)",
	66:  "Siemens FX66 microcontroller (EM_FX66)",
	67:  "STMicroelectronics ST9+ 8/16 bit microcontroller (EM_ST9PLUS)",
	68:  "STMicroelectronics ST7 8-bit microcontroller (EM_ST7)",
	69:  "Motorola MC68HC16 Microcontroller (EM_68HC16)",
	70:  "Motorola MC68HC11 Microcontroller (EM_68HC11)",
	71:  "Motorola MC68HC08 Microcontroller (EM_68HC08)",
	72:  "Motorola MC68HC05 Microcontroller (EM_68HC05)",
	73:  "Silicon Graphics SVx (EM_SVX)",
	74:  "STMicroelectronics ST19 8-bit microcontroller (EM_ST19)",
	75:  "Digital VAX (EM_VAX)",
	76:  "Axis Communications 32-bit embedded processor (EM_CRIS)",
	77:  "Infineon Technologies 32-bit embedded processor (EM_JAVELIN)",
	78:  "Element 14 64-bit DSP Processor (EM_FIREPATH)",
	79:  "LSI Logic 16-bit DSP Processor (EM_ZSP)",
	80:  "Donald Knuth’s educational 64-bit processor (EM_MMIX)",
	81:  "Harvard University machine-independent object files (EM_HUANY)",
	82:  "SiTera Prism (EM_PRISM)",
	83:  "Atmel AVR 8-bit microcontroller (EM_AVR)",
	84:  "Fujitsu FR30 (EM_FR30)",
	85:  "Mitsubishi D10V (EM_D10V)",
	86:  "Mitsubishi D30V (EM_D30V)",
	87:  "NEC v850 (EM_V850)",
	88:  "Mitsubishi M32R (EM_M32R)",
	89:  "Matsushita MN10300 (EM_MN10300)",
	90:  "Matsushita MN10200 (EM_MN10200)",
	91:  "picoJava (EM_PJ)",
	92:  "OpenRISC 32-bit embedded processor (EM_OPENRISC)",
	93:  "ARC International ARCompact processor (old spelling/synonym: EM_ARC_A5) (EM_ARC_COMPACT)",
	94:  "Tensilica Xtensa Architecture (EM_XTENSA)",
	95:  "Alphamosaic VideoCore processor (EM_VIDEOCORE)",
	96:  "Thompson Multimedia General Purpose Processor (EM_TMM_GPP)",
	97:  "National Semiconductor 32000 series (EM_NS32K)",
	98:  "Tenor Network TPC processor (EM_TPC)",
	99:  "Trebia SNP 1000 processor (EM_SNP1K)",
	100: "STMicroelectronics (www.st.com) ST200 microcontroller (EM_ST200)",
	101: "Ubicom IP2xxx microcontroller family (EM_IP2K)",
	102: "MAX Processor (EM_MAX)",
	103: "National Semiconductor CompactRISC microprocessor (EM_CR)",
	104: "Fujitsu F2MC16 (EM_F2MC16)",
	105: "Texas Instruments embedded microcontroller msp430 (EM_MSP430)",
	106: "Analog Devices Blackfin (DSP) processor (EM_BLACKFIN)",
	107: "S1C33 Family of Seiko Epson processors (EM_SE_C33)",
	108: "Sharp embedded microprocessor (EM_SEP)",
	109: "Arca RISC Microprocessor (EM_ARCA)",
	110: "Microprocessor series from PKU-Unity Ltd. and MPRC of Peking University (EM_UNICORE)",
	111: "eXcess: 16/32/64-bit configurable embedded CPU (EM_EXCESS)",
	112: "Icera Semiconductor Inc. Deep Execution Processor (EM_DXP)",
	113: "Altera Nios II soft-core processor (EM_ALTERA_NIOS2)",
	114: "National Semiconductor CompactRISC CRX microprocessor (EM_CRX)",
	115: "Motorola XGATE embedded processor (EM_XGATE)",
	116: "Infineon C16x/XC16x processor (EM_C166)",
	117: "Renesas M16C series microprocessors (EM_M16C)",
	118: "Microchip Technology dsPIC30F Digital Signal Controller (EM_DSPIC30F)",
	119: "Freescale Communication Engine RISC core (EM_CE)",
	120: "Renesas M32C series microprocessors (EM_M32C)",
	131: "Altium TSK3000 core (EM_TSK3000)",
	132: "Freescale RS08 embedded processor (EM_RS08)",
	133: "Analog Devices SHARC family of 32-bit DSP processors (EM_SHARC)",
	134: "Cyan Technology eCOG2 microprocessor (EM_ECOG2)",
	135: "Sunplus S+core7 RISC processor (EM_SCORE7)",
	136: "New Japan Radio (NJR) 24-bit DSP Processor (EM_DSP24)",
	137: "Broadcom VideoCore III processor (EM_VIDEOCORE3)",
	138: "RISC processor for Lattice FPGA architecture (EM_LATTICEMICO32)",
	139: "Seiko Epson C17 family (EM_SE_C17)",
	140: "The Texas Instruments TMS320C6000 DSP family (EM_TI_C6000)",
	141: "The Texas Instruments TMS320C2000 DSP family (EM_TI_C2000)",
	142: "The Texas Instruments TMS320C55x DSP family (EM_TI_C5500)",
	143: "Texas Instruments Application Specific RISC Processor, 32bit fetch (EM_TI_ARP32)",
	144: "Texas Instruments Programmable Realtime Unit (EM_TI_PRU)",
	160: "STMicroelectronics 64bit VLIW Data Signal Processor (EM_MMDSP_PLUS)",
	161: "Cypress M8C microprocessor (EM_CYPRESS_M8C)",
	162: "Renesas R32C series microprocessors (EM_R32C)",
	163: "NXP Semiconductors TriMedia architecture family (EM_TRIMEDIA)",
	164: "QUALCOMM DSP6 Processor (EM_QDSP6)",
	165: "Intel 8051 and variants (EM_8051)",
	166: "STMicroelectronics STxP7x family of configurable and extensible RISC processors (EM_STXP7X)",
	167: "Andes Technology compact code size embedded RISC processor family (EM_NDS32)",
	168: "Cyan Technology eCOG1X family (EM_ECOG1X)",
	169: "Dallas Semiconductor MAXQ30 Core Micro-controllers (EM_MAXQ30)",
	170: "New Japan Radio (NJR) 16-bit DSP Processor (EM_XIMO16)",
	171: "M2000 Reconfigurable RISC Microprocessor (EM_MANIK)",
	172: "Cray Inc. NV2 vector architecture (EM_CRAYNV2)",
	173: "Renesas RX family (EM_RX)",
	174: "Imagination Technologies META processor architecture (EM_METAG)",
	175: "MCST Elbrus general purpose hardware architecture (EM_MCST_ELBRUS)",
	176: "Cyan Technology eCOG16 family (EM_ECOG16)",
	177: "National Semiconductor CompactRISC CR16 16-bit microprocessor (EM_CR16)",
	178: "Freescale Extended Time Processing Unit (EM_ETPU)",
	179: "Infineon Technologies SLE9X core (EM_SLE9X)",
	180: "Intel L10M (EM_L10M)",
	181: "Intel K10M (EM_K10M)",
	183: "ARM 64-bit architecture (AARCH64) (EM_AARCH64)",
	185: "Atmel Corporation 32-bit microprocessor family (EM_AVR32)",
	186: "STMicroeletronics STM8 8-bit microcontroller (EM_STM8)",
	187: "Tilera TILE64 multicore architecture family (EM_TILE64)",
	188: "Tilera TILEPro multicore architecture family (EM_TILEPRO)",
	189: "Xilinx MicroBlaze 32-bit RISC soft processor core (EM_MICROBLAZE)",
	190: "NVIDIA CUDA architecture (EM_CUDA)",
	191: "Tilera TILE-Gx multicore architecture family (EM_TILEGX)",
	192: "CloudShield architecture family (EM_CLOUDSHIELD)",
	193: "KIPO-KAIST Core-A 1st generation processor family (EM_COREA_1ST)",
	194: "KIPO-KAIST Core-A 2nd generation processor family (EM_COREA_2ND)",
	195: "Synopsys ARCompact V2 (EM_ARC_COMPACT2)",
	196: "Open8 8-bit RISC soft processor core (EM_OPEN8)",
	197: "Renesas RL78 family (EM_RL78)",
	198: "Broadcom VideoCore V processor (EM_VIDEOCORE5)",
	199: "Renesas 78KOR family (EM_78KOR)",
	200: "Freescale 56800EX Digital Signal Controller (DSC) (EM_56800EX)",
	201: "Beyond BA1 CPU architecture (EM_BA1)",
	202: "Beyond BA2 CPU architecture (EM_BA2)",
	203: "XMOS xCORE processor family (EM_XCORE)",
	204: "Microchip 8-bit PIC(r) family (EM_MCHP_PIC)",
	205: "Reserved by Intel (EM_INTEL205)",
	206: "Reserved by Intel (EM_INTEL206)",
	207: "Reserved by Intel (EM_INTEL207)",
	208: "Reserved by Intel (EM_INTEL208)",
	209: "Reserved by Intel (EM_INTEL209)",
	210: "KM211 KM32 32-bit processor (EM_KM32)",
	211: "KM211 KMX32 32-bit processor (EM_KMX32)",
	212: "KM211 KMX16 16-bit processor (EM_KMX16)",
	213: "KM211 KMX8 8-bit processor (EM_KMX8)",
	214: "KM211 KVARC processor (EM_KVARC)",
	215: "Paneve CDP architecture family (EM_CDP)",
	216: "Cognitive Smart Memory Processor (EM_COGE)",
	217: "Bluechip Systems CoolEngine (EM_COOL)",
	218: "Nanoradio Optimized RISC (EM_NORC)",
	219: "CSR Kalimba architecture family (EM_CSR_KALIMBA)",
	220: "Zilog Z80 (EM_Z80)",
	221: "Controls and Data Services VISIUMcore processor (EM_VISIUM)",
	222: "FTDI Chip FT32 high performance 32-bit RISC architecture (EM_FT32)",
	223: "Moxie processor family (EM_MOXIE)",
	224: "AMD GPU architecture (EM_AMDGPU)",
	243: "RISC-V (EM_RISCV)",
	244: "Lanai processor (EM_LANAI)",
	245: "CEVA Processor Architecture Family (EM_CEVA)",
	246: "CEVA X2 Processor Family (EM_CEVA_X2)",
	247: "Linux BPF – in-kernel virtual machine (EM_BPF)",
	248: "Graphcore Intelligent Processing Unit (EM_GRAPHCORE_IPU)",
	249: "Imagination Technologies (EM_IMG1)",
	250: "Netronome Flow Processor (NFP) (EM_NFP)",
	251: "NEC Vector Engine (EM_VE)",
	252: "C-SKY processor family (EM_CSKY)",
	253: "Synopsys ARCv2.3 64-bit (EM_ARC_COMPACT3_64)",
	254: "MOS Technology MCS 6502 processor (EM_MCS6502)",
	255: "Synopsys ARCv2.3 32-bit (EM_ARC_COMPACT3)",
	256: "Kalray VLIW core of the MPPA processor family (EM_KVX)",
	257: "WDC 65816/65C816 (EM_65816)",
	258: "Loongson Loongarch (EM_LOONGARCH)",
	259: "ChipON KungFu32 (EM_KF32)",
	260: "LAPIS nX-U16/U8 (EM_U16_U8CORE)",
	261: "Reserved for Tachyum processor (EM_TACHYUM)",
	262: "NXP 56800EF Digital Signal Controller (DSC) (EM_56800EF)",
	263: "Solana Bytecode Format (EM_SBF)",
	264: "AMD/Xilinx AIEngine architecture (EM_AIENGINE)",
	265: "SiMa MLA (EM_SIMA_MLA)",
	266: "Cambricon BANG (EM_BANG)",
	267: "Loongson LoongGPU (EM_LOONGGPU)",
	268: "Wuxi Institute of Advanced Technology SW64 (EM_SW64)",
	269: "AMD/Xilinx AIEngine ctrlcode (EM_AIECTRLCODE)",
}
